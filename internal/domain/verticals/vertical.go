// Package verticals maps a tenant's client id to its business vertical.
// The dashboard renders one of three skins (navigation, labels, accent
// color) depending on which business the tenant runs; everything else in
// the codebase is vertical-agnostic.
package verticals

import "strings"

type Key string

const (
	KeyRealEstate Key = "imobiliaria"
	KeyClinic     Key = "clinica"
	KeyAutoParts  Key = "autopecas"
)

// NavItem is one entry in a vertical's dashboard navigation.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Vertical describes one business skin.
type Vertical struct {
	Key  Key       `json:"key"`
	Nome string    `json:"nome"`
	Cor  string    `json:"cor"`
	Nav  []NavItem `json:"nav"`
}

var catalog = map[Key]Vertical{
	KeyRealEstate: {
		Key:  KeyRealEstate,
		Nome: "Imobiliária",
		Cor:  "#1e40af",
		Nav: []NavItem{
			{Label: "Imóveis", Path: "/properties"},
			{Label: "Leads", Path: "/leads"},
			{Label: "Relatórios", Path: "/reports"},
		},
	},
	KeyClinic: {
		Key:  KeyClinic,
		Nome: "Clínica",
		Cor:  "#047857",
		Nav: []NavItem{
			{Label: "Agenda", Path: "/appointments"},
			{Label: "Pacientes", Path: "/patients"},
			{Label: "Médicos", Path: "/doctors"},
			{Label: "Relatórios", Path: "/reports"},
		},
	},
	KeyAutoParts: {
		Key:  KeyAutoParts,
		Nome: "Autopeças",
		Cor:  "#b91c1c",
		Nav: []NavItem{
			{Label: "Produtos", Path: "/products"},
			{Label: "Pedidos", Path: "/orders"},
			{Label: "Fornecedores", Path: "/suppliers"},
			{Label: "Estoque", Path: "/stock-movements"},
			{Label: "Relatórios", Path: "/reports"},
		},
	},
}

// prefixes maps client id prefixes to verticals. Client ids follow the
// convention clnt_<vertical-hint>_<n>, but a bare hint prefix also works.
var prefixes = map[string]Key{
	"imob": KeyRealEstate,
	"clin": KeyClinic,
	"auto": KeyAutoParts,
}

// Detect resolves a client id to its vertical. Unrecognized ids fall back
// to the real estate skin, the product's first vertical.
func Detect(clientID string) Vertical {
	hint := strings.TrimPrefix(strings.ToLower(clientID), "clnt_")
	for prefix, key := range prefixes {
		if strings.HasPrefix(hint, prefix) {
			return catalog[key]
		}
	}
	return catalog[KeyRealEstate]
}

// Lookup returns the vertical for an explicit key.
func Lookup(key Key) (Vertical, bool) {
	v, ok := catalog[key]
	return v, ok
}

// All lists the catalog in a stable order.
func All() []Vertical {
	return []Vertical{
		catalog[KeyRealEstate],
		catalog[KeyClinic],
		catalog[KeyAutoParts],
	}
}
