package models

import "strings"

// Contact modes.
const (
	ContactWhatsApp  = "whatsapp"
	ContactInstagram = "instagram"
)

// SiteConfig is the presentation configuration resource (config.json).
type SiteConfig struct {
	BrandName   string            `json:"brandName"`
	RunwayTitle string            `json:"runwayTitle,omitempty"`
	HeroImage   string            `json:"heroImage,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	Contact     ContactConfig     `json:"contact"`
}

// ContactConfig describes how visitors reach the brand about a product.
type ContactConfig struct {
	Mode      string          `json:"mode"`
	WhatsApp  WhatsAppConfig  `json:"whatsapp"`
	Instagram InstagramConfig `json:"instagram"`
}

// WhatsAppConfig holds the phone number and prefilled message template.
// Prefill may contain a {name} placeholder.
type WhatsAppConfig struct {
	PhoneE164 string `json:"phoneE164"`
	Prefill   string `json:"prefill,omitempty"`
}

// InstagramConfig holds the profile handle, with or without a leading @.
type InstagramConfig struct {
	Handle string `json:"handle"`
}

// WithDefaults fills blank presentation fields and folds the contact mode.
func (c SiteConfig) WithDefaults() SiteConfig {
	c.Contact.Mode = strings.ToLower(strings.TrimSpace(c.Contact.Mode))
	if c.BrandName == "" {
		c.BrandName = "Showroom"
	}
	if c.RunwayTitle == "" {
		c.RunwayTitle = "Digital Showroom"
	}
	if c.Contact.Mode == "" {
		c.Contact.Mode = ContactWhatsApp
	}
	return c
}
