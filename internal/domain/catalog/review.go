package catalog

import "time"

type Review struct {
	ReviewID    string    `gorm:"column:review_id;primaryKey;size:64" json:"reviewId"`
	MovieInfoID string    `gorm:"column:movie_info_id;size:64;not null;index" json:"movieInfoId"`
	Comment     string    `gorm:"column:comment;type:text" json:"comment"`
	Rating      *float64  `gorm:"column:rating" json:"rating"`
	CreatedAt   time.Time `gorm:"not null;index" json:"-"`
	UpdatedAt   time.Time `gorm:"not null" json:"-"`
}

func (Review) TableName() string { return "review" }
