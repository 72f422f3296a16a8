package catalog

import (
	"time"

	"gorm.io/datatypes"
)

type MovieInfo struct {
	MovieID     string                      `gorm:"column:movie_id;primaryKey;size:64" json:"movieId"`
	Name        string                      `gorm:"column:name;not null;index" json:"name"`
	Year        int                         `gorm:"column:year;not null" json:"year"`
	Cast        datatypes.JSONSlice[string] `gorm:"column:cast_members" json:"cast"`
	ReleaseDate string                      `gorm:"column:release_date;size:10" json:"releaseDate,omitempty"`
	Description string                      `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time                   `gorm:"not null" json:"-"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"-"`
}

func (MovieInfo) TableName() string { return "movie_info" }
