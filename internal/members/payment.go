package members

import (
	"fmt"
	"net/url"
	"strings"
)

const upiCurrency = "INR"

type PaymentIntent struct {
	Reference string  `json:"reference"`
	PlanID    int64   `json:"plan_id"`
	Plan      string  `json:"plan"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	PayeeVPA  string  `json:"payee_vpa"`
	PayeeName string  `json:"payee_name"`
	Note      string  `json:"note"`
	Link      string  `json:"link"`
}

func upiEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// UPILink renders the upi://pay deep link, parameters in the order payment apps document them.
func (p PaymentIntent) UPILink() string {
	return fmt.Sprintf(
		"upi://pay?pa=%s&pn=%s&am=%.2f&cu=%s&tn=%s&tr=%s",
		upiEscape(p.PayeeVPA),
		upiEscape(p.PayeeName),
		p.Amount,
		p.Currency,
		upiEscape(p.Note),
		upiEscape(p.Reference),
	)
}
