// internal/domain/checkout/delivery.go
package checkout

import "strings"

// DeliveryDetails holds the delivery form fields. Validation gates the
// payment step; the details themselves are stored whenever submitted.
type DeliveryDetails struct {
	Name       string `json:"name" form:"name"`
	Address1   string `json:"address1" form:"address1"`
	Address2   string `json:"address2" form:"address2"`
	City       string `json:"city" form:"city"`
	Zip        string `json:"zip" form:"zip"`
	Phone      string `json:"phone" form:"phone"`
	Window     string `json:"window" form:"deliveryWindow"`
	Preference string `json:"preference" form:"deliveryPref"`
	Notes      string `json:"notes" form:"notes"`
}

// Validate returns per-field errors for missing required fields
func (d DeliveryDetails) Validate() map[string]string {
	problems := make(map[string]string)

	required := map[string]string{
		"name":     d.Name,
		"address1": d.Address1,
		"city":     d.City,
		"zip":      d.Zip,
		"phone":    d.Phone,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			problems[field] = "required"
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return problems
}
