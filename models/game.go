package models

// Game is a row of the catalog's game table. Column names follow the
// catalog's camelCase schema rather than gorm's snake_case default.
type Game struct {
	ID           string `gorm:"column:id;primaryKey"`
	Title        string `gorm:"column:title"`
	Developer    string `gorm:"column:developer"`
	Publisher    string `gorm:"column:publisher"`
	PlatformName string `gorm:"column:platformName"`
	ReleaseDate  string `gorm:"column:releaseDate"`
	Playtime     int64  `gorm:"column:playtime"` // seconds
	TagsStr      string `gorm:"column:tagsStr"`
	Library      string `gorm:"column:library"`
}

// TableName pins the singular table name used by the catalog.
func (Game) TableName() string {
	return "game"
}
