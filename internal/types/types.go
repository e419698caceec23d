package types

// Kind discriminates the two possible outcomes of a successful detection.
type Kind string

const (
	// KindSecretFound means a dictionary entry verified the token's signature.
	KindSecretFound Kind = "SecretFound"
	// KindProductIdentified means the token matched a known product's
	// structure but no dictionary entry verified it.
	KindProductIdentified Kind = "ProductIdentified"
)

// ProductInfo describes what a module detects: the product category and the
// category of secret it cracks (e.g. "ASP.NET" / "MachineKey").
type ProductInfo struct {
	Product string `json:"product"`
	Secret  string `json:"secret"`
}

// DetectionResult is a single detection outcome. Exactly one Kind is set per
// result; Secret and Details are only populated for KindSecretFound, Hashcat
// only for KindProductIdentified.
type DetectionResult struct {
	Kind            Kind               `json:"type"`
	DetectingModule string             `json:"detecting_module"`
	Description     ProductInfo        `json:"description"`
	Product         string             `json:"product"` // the observed token value
	Location        string             `json:"location"`
	Secret          string             `json:"secret,omitempty"`
	Details         string             `json:"details,omitempty"`
	Hashcat         []HashcatCandidate `json:"hashcat,omitempty"`
}

// HashcatCandidate is an offline-cracking command template for a token
// format, keyed by the module that recognized it.
type HashcatCandidate struct {
	DetectingModule string `json:"detecting_module"`
	Description     string `json:"hashcat_description"`
	Command         string `json:"hashcat_command"`
}

// Response is the minimal HTTP response surface the carver consumes. It is
// deliberately transport-agnostic: callers populate it from whatever client
// they use.
type Response struct {
	Headers map[string]string `json:"headers"`
	Cookies map[string]string `json:"cookies"`
	Body    string            `json:"body"`
}
