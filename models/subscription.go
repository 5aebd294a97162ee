package models

// SubscriptionPlan 订阅计划
type SubscriptionPlan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular,omitempty"`
}

// SubscriptionRequest 订阅请求
type SubscriptionRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

// GetSubscriptionPlans 获取所有订阅计划
func GetSubscriptionPlans() []SubscriptionPlan {
	return []SubscriptionPlan{
		{
			ID:          "starter",
			Name:        "Starter",
			Price:       9.99,
			Period:      "per month",
			Description: "Perfect for individuals getting started",
			Features: []string{
				"Up to 50 AI-generated responses per month",
				"Basic scheduling recommendations",
				"Standard audience insights",
				"Email support",
			},
		},
		{
			ID:          "pro",
			Name:        "Pro",
			Price:       19.99,
			Period:      "per month",
			Description: "Ideal for growing professionals",
			Features: []string{
				"Up to 200 AI-generated responses per month",
				"Advanced scheduling with optimal timing",
				"Detailed audience analytics",
				"Personalized interaction suggestions",
				"Priority support",
				"Custom communication styles",
			},
			Popular: true,
		},
		{
			ID:          "enterprise",
			Name:        "Enterprise",
			Price:       49.99,
			Period:      "per month",
			Description: "For teams and heavy users",
			Features: []string{
				"Unlimited AI-generated responses",
				"Advanced scheduling & automation",
				"Comprehensive audience insights",
				"Team collaboration features",
				"API access",
				"Dedicated account manager",
				"Custom integrations",
			},
		},
	}
}

// FindSubscriptionPlan 按ID查找订阅计划
func FindSubscriptionPlan(id string) (SubscriptionPlan, bool) {
	for _, plan := range GetSubscriptionPlans() {
		if plan.ID == id {
			return plan, true
		}
	}
	return SubscriptionPlan{}, false
}
