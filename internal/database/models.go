package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。Slug 是公开作品集链接使用的标识。
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:64"`
	PasswordHash string `gorm:"size:255"`
	Slug         string `gorm:"uniqueIndex;size:64"`
	Locale       string `gorm:"size:8;default:pt"`
	Profile      *Profile
	Experiences  []Experience   `gorm:"constraint:OnDelete:CASCADE"`
	Projects     []Project      `gorm:"constraint:OnDelete:CASCADE"`
	Articles     []Article      `gorm:"constraint:OnDelete:CASCADE"`
	Videos       []FeaturedVideo `gorm:"constraint:OnDelete:CASCADE"`
	CVs          []CV           `gorm:"constraint:OnDelete:CASCADE"`
}

// Profile 表示用户的个人资料。技能、教育经历和社交链接
// 结构不固定，用 JSONB 整体存储。
type Profile struct {
	gorm.Model
	UserID      uint   `gorm:"uniqueIndex"`
	Name        string `gorm:"size:255"`
	Headline    string `gorm:"size:255"`
	Bio         string `gorm:"type:text"`
	Location    string `gorm:"size:255"`
	Email       string `gorm:"size:255"`
	Phone       string `gorm:"size:64"`
	PhotoKey    string `gorm:"size:512"`
	ShowPhoto   *bool
	Skills      datatypes.JSON `gorm:"type:jsonb"`
	Education   datatypes.JSON `gorm:"type:jsonb"`
	SocialLinks datatypes.JSON `gorm:"type:jsonb"`
}

// Experience 表示一段工作经历，Position 决定展示顺序。
type Experience struct {
	gorm.Model
	UserID      uint   `gorm:"index"`
	Title       string `gorm:"size:255"`
	Company     string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	Period      string `gorm:"size:128"`
	Position    int    `gorm:"index"`
}

// Project 表示一个作品集项目。
type Project struct {
	gorm.Model
	UserID      uint   `gorm:"index"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	LinkURL     string `gorm:"size:512"`
	Position    int    `gorm:"index"`
}

// Article 表示一篇对外发表的文章。
type Article struct {
	gorm.Model
	UserID      uint   `gorm:"index"`
	Title       string `gorm:"size:255"`
	Summary     string `gorm:"type:text"`
	Publication string `gorm:"size:255"`
	Position    int    `gorm:"index"`
}

// FeaturedVideo 表示作品集里精选展示的视频。
type FeaturedVideo struct {
	gorm.Model
	UserID      uint   `gorm:"index"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	Platform    string `gorm:"size:64"`
	Position    int    `gorm:"index"`
}

// Theme 保存用户的主题设置，每个用户一条，写入走 upsert。
type Theme struct {
	gorm.Model
	UserID          uint   `gorm:"uniqueIndex"`
	PrimaryColor    string `gorm:"size:32"`
	SecondaryColor  string `gorm:"size:32"`
	AccentColor     string `gorm:"size:32"`
	BackgroundColor string `gorm:"size:32"`
	FontFamily      string `gorm:"size:64"`
	Mode            string `gorm:"size:16"`
	Layout          string `gorm:"size:32"`
	PortfolioTemplate string `gorm:"size:32;default:modern"`
}

// CV 表示一份简历配置:选用的模板和导出产物。
type CV struct {
	gorm.Model
	UserID     uint           `gorm:"index"`
	Title      string         `gorm:"size:255"`
	TemplateID string         `gorm:"size:32;default:modern"`
	Settings   datatypes.JSON `gorm:"type:jsonb"`
	PdfKey     string         `gorm:"size:512"`
	Status     string         `gorm:"size:32"`
}

// Subscription 是计费方同步过来的订阅数据，本服务只读。
type Subscription struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex"`
	Status       string `gorm:"size:32"`
	TrialEndsAt  *time.Time
	PeriodEndsAt *time.Time
	GraceDays    *int
}

// PublishRecord 记录一次作品集发布:生成的快照对象和使用的模板。
type PublishRecord struct {
	gorm.Model
	UserID     uint   `gorm:"index"`
	Slug       string `gorm:"index;size:64"`
	TemplateID string `gorm:"size:32"`
	Locale     string `gorm:"size:8"`
	HTMLKey    string `gorm:"size:512"`
	Status     string `gorm:"size:32"`
}
