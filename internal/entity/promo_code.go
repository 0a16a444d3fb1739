package entity

import "time"

type PromoCode struct {
	Base

	Code       string `gorm:"uniqueIndex"`
	PercentOff float64

	MaxUses   int
	UsedCount int

	ExpiredAt time.Time
}
