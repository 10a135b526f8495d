package models

// Plan is one entry in the pricing catalog shown on the upgrade screen.
// PriceID is the billing provider's price identifier used to start checkout.
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	PriceID     string   `json:"-"` // billing-provider identifier, not client business
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
}

// Plans returns the pricing catalog. The billing price identifiers come
// from configuration; empty ids keep the product's defaults.
func Plans(pricePlus, pricePlatinum string) []Plan {
	if pricePlus == "" {
		pricePlus = "prod_SrBrU9a43Ry72h"
	}
	if pricePlatinum == "" {
		pricePlatinum = "prod_SrBrnHx5E3KfSZ"
	}
	return []Plan{
		{
			ID:          "plus",
			Name:        "Plus",
			Price:       "$3.99",
			Period:      "/month",
			Description: "Enhanced prompt generation and features",
			PriceID:     pricePlus,
			Features: []string{
				"Unlimited prompts with advanced reasoning",
				"Faster response times",
				"More built in templates",
				"Expanded memory",
			},
			Popular: true,
		},
		{
			ID:          "platinum",
			Name:        "Platinum",
			Price:       "$14.99",
			Period:      "/month",
			Description: "Ultimate prompt creation experience",
			PriceID:     pricePlatinum,
			Features: []string{
				"Unlimited prompts with pro reasoning",
				"The fastest response times",
				"Customizable template settings",
			},
		},
	}
}

// FindPlan looks up a plan by its ID within a catalog.
func FindPlan(plans []Plan, id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// PlanTier maps a plan ID to the tier it grants.
func PlanTier(planID string) (Tier, bool) {
	switch planID {
	case "plus":
		return TierPlus, true
	case "platinum":
		return TierPlatinum, true
	default:
		return TierFree, false
	}
}
