package model

import "time"

type CreatePromoCodeRequest struct {
	Code       string    `json:"code"`
	PercentOff float64   `json:"percent_off"`
	MaxUses    int       `json:"max_uses"`
	ExpiredAt  time.Time `json:"expired_at"`
}

type CreatePromoCodeResponse struct {
	ID string `json:"id"`
}
