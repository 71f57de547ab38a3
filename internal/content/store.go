// Package content 负责把数据库行组装成模板层消费的数据契约。
// 模板层从不接触 gorm 模型，所有 JSONB 解码和排序都在这里完成。
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"phFolio/internal/database"
	"phFolio/internal/render"
)

// ErrProfileNotFound 表示用户还没有填写档案。
var ErrProfileNotFound = errors.New("profile not found")

// PhotoURLFunc 把存储对象键换成可访问的 URL，为空时照片不展示。
type PhotoURLFunc func(ctx context.Context, objectKey string) (string, error)

// Store 从数据库加载并组装渲染契约。
type Store struct {
	db       *gorm.DB
	photoURL PhotoURLFunc
}

func NewStore(db *gorm.DB, photoURL PhotoURLFunc) *Store {
	return &Store{db: db, photoURL: photoURL}
}

// educationJSON 是 Profile.Education JSONB 列的持久化形状。
type educationJSON struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartYear   string `json:"start_year"`
	EndYear     string `json:"end_year"`
	Period      string `json:"period"`
}

// LoadProfile 加载档案并解码 JSONB 字段。档案不存在时返回
// ErrProfileNotFound，由调用方决定是 404 还是空档案渲染。
func (s *Store) LoadProfile(ctx context.Context, userID uint) (render.Profile, error) {
	var row database.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return render.Profile{}, ErrProfileNotFound
		}
		return render.Profile{}, fmt.Errorf("load profile for user %d: %w", userID, err)
	}
	return s.profileFromRow(ctx, row)
}

func (s *Store) profileFromRow(ctx context.Context, row database.Profile) (render.Profile, error) {
	p := render.Profile{
		ID:        strconv.FormatUint(uint64(row.UserID), 10),
		Name:      row.Name,
		Headline:  row.Headline,
		Bio:       row.Bio,
		Location:  row.Location,
		Email:     row.Email,
		Phone:     row.Phone,
		ShowPhoto: row.ShowPhoto,
	}

	if len(row.Skills) > 0 {
		if err := json.Unmarshal(row.Skills, &p.Skills); err != nil {
			return render.Profile{}, fmt.Errorf("decode skills for user %d: %w", row.UserID, err)
		}
	}
	if len(row.Education) > 0 {
		var records []educationJSON
		if err := json.Unmarshal(row.Education, &records); err != nil {
			return render.Profile{}, fmt.Errorf("decode education for user %d: %w", row.UserID, err)
		}
		p.Education = make([]render.EducationRecord, 0, len(records))
		for _, r := range records {
			p.Education = append(p.Education, render.EducationRecord{
				Institution: r.Institution,
				Degree:      r.Degree,
				StartYear:   r.StartYear,
				EndYear:     r.EndYear,
				Period:      r.Period,
			})
		}
	}
	if len(row.SocialLinks) > 0 {
		if err := json.Unmarshal(row.SocialLinks, &p.SocialLinks); err != nil {
			return render.Profile{}, fmt.Errorf("decode social links for user %d: %w", row.UserID, err)
		}
	}

	if row.PhotoKey != "" && s.photoURL != nil {
		url, err := s.photoURL(ctx, row.PhotoKey)
		if err != nil {
			// 照片拿不到链接时降级为无照片展示，不阻断渲染。
			p.PhotoURL = ""
		} else {
			p.PhotoURL = url
		}
	}

	return p, nil
}

// LoadTheme 返回用户主题，没有保存过主题时返回 nil。
func (s *Store) LoadTheme(ctx context.Context, userID uint) (*render.Theme, error) {
	var row database.Theme
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load theme for user %d: %w", userID, err)
	}
	theme := themeFromRow(row)
	return &theme, nil
}

func themeFromRow(row database.Theme) render.Theme {
	return render.Theme{
		PrimaryColor:    row.PrimaryColor,
		SecondaryColor:  row.SecondaryColor,
		AccentColor:     row.AccentColor,
		BackgroundColor: row.BackgroundColor,
		FontFamily:      row.FontFamily,
		Mode:            row.Mode,
		Layout:          row.Layout,
	}
}

func (s *Store) loadExperiences(ctx context.Context, userID uint) ([]render.Experience, error) {
	var rows []database.Experience
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load experiences for user %d: %w", userID, err)
	}
	out := make([]render.Experience, 0, len(rows))
	for _, r := range rows {
		out = append(out, render.Experience{
			ID:          strconv.FormatUint(uint64(r.ID), 10),
			Title:       r.Title,
			Company:     r.Company,
			Description: r.Description,
			Period:      r.Period,
		})
	}
	return out, nil
}

func (s *Store) loadProjects(ctx context.Context, userID uint) ([]render.Project, error) {
	var rows []database.Project
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load projects for user %d: %w", userID, err)
	}
	out := make([]render.Project, 0, len(rows))
	for _, r := range rows {
		out = append(out, render.Project{
			ID:          strconv.FormatUint(uint64(r.ID), 10),
			Title:       r.Title,
			Description: r.Description,
			LinkURL:     r.LinkURL,
		})
	}
	return out, nil
}

func (s *Store) loadArticles(ctx context.Context, userID uint) ([]render.Article, error) {
	var rows []database.Article
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load articles for user %d: %w", userID, err)
	}
	out := make([]render.Article, 0, len(rows))
	for _, r := range rows {
		out = append(out, render.Article{
			ID:          strconv.FormatUint(uint64(r.ID), 10),
			Title:       r.Title,
			Summary:     r.Summary,
			Publication: r.Publication,
		})
	}
	return out, nil
}

func (s *Store) loadVideos(ctx context.Context, userID uint) ([]render.FeaturedVideo, error) {
	var rows []database.FeaturedVideo
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load videos for user %d: %w", userID, err)
	}
	out := make([]render.FeaturedVideo, 0, len(rows))
	for _, r := range rows {
		out = append(out, render.FeaturedVideo{
			ID:          strconv.FormatUint(uint64(r.ID), 10),
			Title:       r.Title,
			Description: r.Description,
			Platform:    r.Platform,
		})
	}
	return out, nil
}

// LoadCVProps 组装 CV 渲染输入。没有档案时使用空档案，
// 模板自身负责占位符展示。
func (s *Store) LoadCVProps(ctx context.Context, userID uint, locale render.Locale) (render.CVProps, error) {
	profile, err := s.LoadProfile(ctx, userID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return render.CVProps{}, err
	}
	profile.Locale = locale

	experiences, err := s.loadExperiences(ctx, userID)
	if err != nil {
		return render.CVProps{}, err
	}
	projects, err := s.loadProjects(ctx, userID)
	if err != nil {
		return render.CVProps{}, err
	}
	articles, err := s.loadArticles(ctx, userID)
	if err != nil {
		return render.CVProps{}, err
	}
	theme, err := s.LoadTheme(ctx, userID)
	if err != nil {
		return render.CVProps{}, err
	}

	return render.CVProps{
		Profile:     profile,
		Experiences: experiences,
		Projects:    projects,
		Articles:    articles,
		Locale:      locale,
		Theme:       theme,
	}, nil
}

// LoadPortfolioProps 组装作品集渲染输入。
func (s *Store) LoadPortfolioProps(ctx context.Context, userID uint, locale render.Locale) (render.PortfolioProps, error) {
	cvProps, err := s.LoadCVProps(ctx, userID, locale)
	if err != nil {
		return render.PortfolioProps{}, err
	}
	videos, err := s.loadVideos(ctx, userID)
	if err != nil {
		return render.PortfolioProps{}, err
	}

	return render.PortfolioProps{
		Profile:     cvProps.Profile,
		Experiences: cvProps.Experiences,
		Projects:    cvProps.Projects,
		Videos:      videos,
		Articles:    cvProps.Articles,
		Locale:      locale,
		Theme:       cvProps.Theme,
	}, nil
}
