package model

// Keys of the admin_config table
const (
	SettingSuperAdminHash  = "super_admin_hash"
	SettingSupportWhatsApp = "super_admin_whatsapp"
)

// AdminConfig is the storage row behind PlatformSettings
type AdminConfig struct {
	Key   string `gorm:"primaryKey;type:varchar(50)"`
	Value string `gorm:"type:text;not null"`
}

// TableName keeps the historical table name
func (AdminConfig) TableName() string {
	return "admin_config"
}

// PlatformSettings is the process-wide operator configuration
type PlatformSettings struct {
	SuperAdminHash  string
	SupportWhatsApp string
}
