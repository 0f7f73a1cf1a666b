package errors

// template defines a registered error code.
type template struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]template{
	"E001": {
		Category: CategoryParse,
		Message:  "HTML source did not parse",
		Detail:   "The raw text entered in source view reached a fatal parser state. The visual tree and the form field were left unchanged.",
	},
	"E002": {
		Category: CategoryRegistry,
		Message:  "Unknown editor instance",
		Detail:   "No editor is registered under this field id. The operation was a no-op.",
	},
	"E003": {
		Category: CategoryRegistry,
		Message:  "No focused editor instance",
		Detail:   "InsertAtActive needs a last-focused instance; none was recorded.",
	},
	"E004": {
		Category: CategoryConfig,
		Message:  "Malformed instance parameter",
		Detail:   "A JSON-bearing instantiation parameter failed to parse after control-character escaping. The parameter fell back to its default.",
	},
	"E005": {
		Category: CategoryCommand,
		Message:  "Tool token not enabled",
		Detail:   "The command token is not in this instance's enabled set.",
	},
	"E006": {
		Category: CategoryProtocol,
		Message:  "Stream write failed",
		Detail:   "A field-update message could not be delivered over the WebSocket stream.",
	},
}
