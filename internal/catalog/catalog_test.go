package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestCategoriesFixedOrder(t *testing.T) {
	want := []string{"学术讲座", "文体活动", "社会实践", "志愿服务", "竞赛活动", "其他"}

	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("at %d: got %q, want %q", i, got[i].Name, want[i])
		}
	}
}

func TestCategoriesIsCopy(t *testing.T) {
	got := Categories()
	got[0].Name = "changed"
	if Categories()[0].Name != "学术讲座" {
		t.Error("Categories exposed the shared slice")
	}
}

func TestAnnouncements(t *testing.T) {
	got := Announcements()
	if len(got) != 3 {
		t.Fatalf("got %d announcements, want 3", len(got))
	}

	wantDates := []string{"2024-01-01", "2024-01-15", "2024-01-20"}
	wantTitles := []string{"欢迎使用活动管理系统", "活动报名提醒", "签到功能说明"}
	for i := range got {
		if got[i].Date != wantDates[i] || got[i].Title != wantTitles[i] {
			t.Errorf("at %d: got %+v", i, got[i])
		}
		if got[i].Content == "" {
			t.Errorf("at %d: empty content", i)
		}
	}

	got[1].Title = "changed"
	if Announcements()[1].Title != "活动报名提醒" {
		t.Error("Announcements exposed the shared slice")
	}
}

func TestNewIndex(t *testing.T) {
	idx := NewIndex("http://localhost:8080/")

	if idx.Name != ServerName || idx.Version != "1.0" {
		t.Errorf("unexpected header: %+v", idx)
	}
	if len(idx.Endpoints) != 5 {
		t.Fatalf("got %d endpoints, want 5", len(idx.Endpoints))
	}
	if ep := idx.Endpoints[2]; ep.Method != "POST" || ep.Path != "/api/activities/sync" || ep.Description != "同步活动信息" {
		t.Errorf("sync endpoint = %+v", ep)
	}
	if idx.Usage != "在Qt应用程序中配置 baseUrl = 'http://localhost:8080/api'" {
		t.Errorf("Usage = %q", idx.Usage)
	}
}

func TestWriteBanner(t *testing.T) {
	var buf bytes.Buffer
	WriteBanner(&buf, "http://localhost:8080")
	out := buf.String()

	for _, want := range []string{
		ServerName,
		"服务器地址: http://localhost:8080",
		"API基础路径: http://localhost:8080/api",
		"POST /api/activities/sync",
		"按 Ctrl+C 停止服务器",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q", want)
		}
	}
}

func TestIndexEndpointsKeepOrder(t *testing.T) {
	data, err := json.Marshal(NewIndex("http://localhost:8080"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := []string{
		`"GET /api/categories"`,
		`"GET /api/announcements"`,
		`"POST /api/activities/sync"`,
		`"GET /api/synced-activities"`,
		`"GET /api/health"`,
	}
	last := -1
	for _, key := range want {
		i := strings.Index(string(data), key)
		if i <= last {
			t.Fatalf("%s out of order in %s", key, data)
		}
		last = i
	}

	var back Index
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Endpoints) != len(want) {
		t.Fatalf("got %d endpoints back, want %d", len(back.Endpoints), len(want))
	}
	for i, ep := range Endpoints() {
		got := back.Endpoints[i]
		if got.Method != ep.Method || got.Path != ep.Path || got.Description != ep.Description {
			t.Errorf("endpoint %d = %+v, want %+v", i, got, ep)
		}
	}
}
