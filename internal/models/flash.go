// ABOUTME: Flash is a one-shot user-facing message shown on the next page
// ABOUTME: Category maps onto the alert styles used by the templates
package models

// FlashCategory selects how a flash is rendered
type FlashCategory string

const (
	FlashSuccess FlashCategory = "success"
	FlashInfo    FlashCategory = "info"
	FlashWarning FlashCategory = "warning"
	FlashDanger  FlashCategory = "danger"
)

// Flash is a message queued for the next render
type Flash struct {
	Category FlashCategory `json:"category"`
	Message  string        `json:"message"`
}
