package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	ServerName    = "校园活动管理系统 - 测试服务器"
	ServerVersion = "1.0"
)

// Endpoint describes one public route for the index document and the
// startup banner.
type Endpoint struct {
	Method      string
	Path        string
	Description string
	// Summary is the shorter label used in the banner.
	Summary string
}

var endpoints = []Endpoint{
	{Method: "GET", Path: "/api/categories", Description: "获取活动类别列表", Summary: "获取活动类别"},
	{Method: "GET", Path: "/api/announcements", Description: "获取公告列表", Summary: "获取公告"},
	{Method: "POST", Path: "/api/activities/sync", Description: "同步活动信息", Summary: "同步活动"},
	{Method: "GET", Path: "/api/synced-activities", Description: "获取已同步的活动（测试用）", Summary: "查看已同步活动"},
	{Method: "GET", Path: "/api/health", Description: "健康检查", Summary: "健康检查"},
}

func Endpoints() []Endpoint {
	out := make([]Endpoint, len(endpoints))
	copy(out, endpoints)
	return out
}

// EndpointList encodes as a JSON object mapping "METHOD path" to the
// endpoint description, keeping the declaration order.
type EndpointList []Endpoint

func (l EndpointList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ep := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ep.Method + " " + ep.Path)
		if err != nil {
			return nil, err
		}
		desc, err := json.Marshal(ep.Description)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(desc)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *EndpointList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("endpoints: expected object, got %v", tok)
	}

	out := EndpointList{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var desc string
		if err := dec.Decode(&desc); err != nil {
			return fmt.Errorf("endpoints: %s: %w", key, err)
		}
		method, path, _ := strings.Cut(key, " ")
		out = append(out, Endpoint{Method: method, Path: path, Description: desc})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}

// Index is the discovery document served at the root path.
type Index struct {
	Name      string       `json:"name"`
	Version   string       `json:"version"`
	Endpoints EndpointList `json:"endpoints"`
	Usage     string       `json:"usage"`
}

// NewIndex builds the discovery document. baseURL is where clients reach the
// server, e.g. http://localhost:8080.
func NewIndex(baseURL string) Index {
	return Index{
		Name:      ServerName,
		Version:   ServerVersion,
		Endpoints: EndpointList(Endpoints()),
		Usage:     fmt.Sprintf("在Qt应用程序中配置 baseUrl = '%s/api'", strings.TrimRight(baseURL, "/")),
	}
}

// WriteBanner prints the human-readable startup banner.
func WriteBanner(w io.Writer, baseURL string) {
	baseURL = strings.TrimRight(baseURL, "/")
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, ServerName)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "服务器地址: %s\n", baseURL)
	fmt.Fprintf(w, "API基础路径: %s/api\n", baseURL)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "\n可用端点:")
	for _, ep := range endpoints {
		fmt.Fprintf(w, "  %-4s %-26s - %s\n", ep.Method, ep.Path, ep.Summary)
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "\n按 Ctrl+C 停止服务器")
	fmt.Fprintln(w)
}
