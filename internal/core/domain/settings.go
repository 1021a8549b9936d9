package domain

// SettingRegistrationFee is the key of the single mutable scalar setting read
// by the registration flow and written only by executives. No history is kept;
// last write wins.
const SettingRegistrationFee = "registration_fee"

// Setting is one key/value row in the settings store. Values are kept as the
// string the writer supplied so decimals round-trip without precision loss.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
