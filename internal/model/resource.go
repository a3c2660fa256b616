package model

// Client is a customer invoices are issued to.
type Client struct {
	Base
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Country string `json:"country,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Enabled bool   `json:"enabled"`
}

// Validate requires a name and a well-formed email when one is given.
func (c Client) Validate() error { return validate.Struct(c) }

// PaymentMode is a way of paying, such as bank transfer or cash.
type PaymentMode struct {
	Base
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	IsDefault   bool   `json:"isDefault"`
	Enabled     bool   `json:"enabled"`
}

// Validate requires a name.
func (m PaymentMode) Validate() error { return validate.Struct(m) }

// Setting is a key/value application preference.
type Setting struct {
	Base
	SettingKey      string `json:"settingKey" validate:"required"`
	SettingValue    any    `json:"settingValue"`
	SettingCategory string `json:"settingCategory,omitempty"`
	ValueType       string `json:"valueType,omitempty" validate:"omitempty,oneof=string number boolean object array"`
}

// Validate requires a key and a known value type.
func (s Setting) Validate() error { return validate.Struct(s) }
