package models

import "time"

// CheckoutStatus 模拟支付状态
type CheckoutStatus string

const (
	CheckoutPending   CheckoutStatus = "pending"
	CheckoutCompleted CheckoutStatus = "completed"
)

// CheckoutSession 模拟支付会话，不涉及真实扣款
type CheckoutSession struct {
	ID        string         `json:"id"`
	PlanID    string         `json:"planId"`
	Amount    float64        `json:"amount"`
	Status    CheckoutStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
}
