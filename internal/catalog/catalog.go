// Package catalog holds the fixed reference data served by the mock: the
// activity categories, the announcements and the API index document.
package catalog

type Category struct {
	Name string `json:"name"`
}

type Announcement struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

var categories = []Category{
	{Name: "学术讲座"},
	{Name: "文体活动"},
	{Name: "社会实践"},
	{Name: "志愿服务"},
	{Name: "竞赛活动"},
	{Name: "其他"},
}

var announcements = []Announcement{
	{
		Title:   "欢迎使用活动管理系统",
		Content: "系统已上线，欢迎使用！如有问题请联系管理员。",
		Date:    "2024-01-01",
	},
	{
		Title:   "活动报名提醒",
		Content: "请及时关注活动信息，及时报名。热门活动名额有限，先到先得。",
		Date:    "2024-01-15",
	},
	{
		Title:   "签到功能说明",
		Content: "活动开始后，学生可以在报名管理页面进行签到。管理员也可以为学生签到。",
		Date:    "2024-01-20",
	},
}

// Categories returns a fresh copy of the category list.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Announcements returns a fresh copy of the announcement list.
func Announcements() []Announcement {
	out := make([]Announcement, len(announcements))
	copy(out, announcements)
	return out
}
