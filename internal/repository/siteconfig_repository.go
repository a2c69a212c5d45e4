package repository

import (
	"gorm.io/gorm"

	"go-blog/internal/model"
)

// SiteConfigRepository 接口定义了站点配置相关实体（友链、侧边栏、站点设置）的数据操作。
type SiteConfigRepository interface {
	// 友情链接
	CreateLink(link *model.Link) error
	UpdateLink(link *model.Link) error
	DeleteLink(id uint) error
	// FindEnabledLinks 返回所有启用的友链，权重高的在前。
	FindEnabledLinks() ([]model.Link, error)

	// 侧边栏
	CreateSideBar(sidebar *model.SideBar) error
	UpdateSideBar(sidebar *model.SideBar) error
	DeleteSideBar(id uint) error
	// FindEnabledSideBars 返回所有启用的侧边栏，按排序号升序。
	FindEnabledSideBars() ([]model.SideBar, error)

	// 站点设置
	CreateSettings(settings *model.BlogSettings) error
	UpdateSettings(settings *model.BlogSettings) error
	FindSettingsByID(id uint) (*model.BlogSettings, error)
	FindAllSettings() ([]model.BlogSettings, error)
	// FindEnabledSettings 返回所有启用的设置行，按 id 升序。
	// 约束上最多只应有一行，调用方容忍违例并取第一行。
	FindEnabledSettings() ([]model.BlogSettings, error)
	// CountEnabledSettingsExcept 统计除给定 id 外处于启用状态的设置行数，用于写入校验。
	CountEnabledSettingsExcept(id uint) (int64, error)
}

// siteConfigRepository 是 SiteConfigRepository 接口的 GORM 实现。
type siteConfigRepository struct {
	db *gorm.DB
}

// NewSiteConfigRepository 创建一个新的 SiteConfigRepository 实例。
func NewSiteConfigRepository(db *gorm.DB) SiteConfigRepository {
	return &siteConfigRepository{db: db}
}

// CreateLink 插入一条友链记录。
func (r *siteConfigRepository) CreateLink(link *model.Link) error {
	return r.db.Create(link).Error
}

// UpdateLink 更新一条友链记录。
func (r *siteConfigRepository) UpdateLink(link *model.Link) error {
	return r.db.Save(link).Error
}

// DeleteLink 删除一条友链记录。
func (r *siteConfigRepository) DeleteLink(id uint) error {
	return r.db.Delete(&model.Link{}, id).Error
}

// FindEnabledLinks 返回所有启用的友链，权重高的在前。
func (r *siteConfigRepository) FindEnabledLinks() ([]model.Link, error) {
	var links []model.Link
	err := r.db.Where("is_enable = ?", true).
		Order("weight DESC, id").Find(&links).Error
	return links, err
}

// CreateSideBar 插入一条侧边栏记录。
func (r *siteConfigRepository) CreateSideBar(sidebar *model.SideBar) error {
	return r.db.Create(sidebar).Error
}

// UpdateSideBar 更新一条侧边栏记录。
func (r *siteConfigRepository) UpdateSideBar(sidebar *model.SideBar) error {
	return r.db.Save(sidebar).Error
}

// DeleteSideBar 删除一条侧边栏记录。
func (r *siteConfigRepository) DeleteSideBar(id uint) error {
	return r.db.Delete(&model.SideBar{}, id).Error
}

// FindEnabledSideBars 返回所有启用的侧边栏，按排序号升序。
func (r *siteConfigRepository) FindEnabledSideBars() ([]model.SideBar, error) {
	var sidebars []model.SideBar
	err := r.db.Where("is_enable = ?", true).
		Order("display_order").Find(&sidebars).Error
	return sidebars, err
}

// CreateSettings 插入一条站点设置记录。
func (r *siteConfigRepository) CreateSettings(settings *model.BlogSettings) error {
	return r.db.Create(settings).Error
}

// UpdateSettings 更新一条站点设置记录。
func (r *siteConfigRepository) UpdateSettings(settings *model.BlogSettings) error {
	return r.db.Save(settings).Error
}

// FindSettingsByID 根据 ID 查找一条站点设置。
func (r *siteConfigRepository) FindSettingsByID(id uint) (*model.BlogSettings, error) {
	var settings model.BlogSettings
	err := r.db.First(&settings, id).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// FindAllSettings 返回所有站点设置记录。
func (r *siteConfigRepository) FindAllSettings() ([]model.BlogSettings, error) {
	var settings []model.BlogSettings
	err := r.db.Order("id").Find(&settings).Error
	return settings, err
}

// FindEnabledSettings 返回所有启用的设置行，按 id 升序。
func (r *siteConfigRepository) FindEnabledSettings() ([]model.BlogSettings, error) {
	var settings []model.BlogSettings
	err := r.db.Where("is_enable = ?", true).Order("id").Find(&settings).Error
	return settings, err
}

// CountEnabledSettingsExcept 统计除给定 id 外处于启用状态的设置行数。
func (r *siteConfigRepository) CountEnabledSettingsExcept(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.BlogSettings{}).
		Where("is_enable = ? AND id <> ?", true, id).Count(&count).Error
	return count, err
}
