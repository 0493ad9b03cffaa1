package models

import "time"

type PushToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *PushToken) GetID() int   { return p.ID }
func (p *PushToken) SetID(id int) { p.ID = id }

type PushTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}
