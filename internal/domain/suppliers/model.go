package suppliers

// Record is the backend wire shape.
type Record struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	ContactName string `json:"contactName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	CNPJ        string `json:"taxId,omitempty"`
	Address     string `json:"address,omitempty"`
}

// View is the display shape.
type View struct {
	ID       string `json:"id"`
	Empresa  string `json:"empresa"`
	Contato  string `json:"contato,omitempty"`
	Telefone string `json:"telefone,omitempty"`
	Email    string `json:"email,omitempty"`
	CNPJ     string `json:"cnpj,omitempty"`
	Endereco string `json:"endereco,omitempty"`
}

func (r Record) ToView() View {
	return View{
		ID:       r.ID,
		Empresa:  r.CompanyName,
		Contato:  r.ContactName,
		Telefone: r.Phone,
		Email:    r.Email,
		CNPJ:     r.CNPJ,
		Endereco: r.Address,
	}
}

func (v View) ToRecord() Record {
	return Record{
		ID:          v.ID,
		CompanyName: v.Empresa,
		ContactName: v.Contato,
		Phone:       v.Telefone,
		Email:       v.Email,
		CNPJ:        v.CNPJ,
		Address:     v.Endereco,
	}
}
