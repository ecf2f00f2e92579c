package entity

// Customer is a customer record. Field names follow the legacy DBF
// register the customer base was imported from, which is why they are
// Slovak: podnik = company name, adresa = address, psc = postal code,
// zlava = discount, cuct/banka/kod_ban = bank account details. The
// k-prefixed fields are the correspondence address.
type Customer struct {
	ID      uint     `json:"id" gorm:"primaryKey"`
	ICO     *string  `json:"ico" gorm:"column:ico;size:10"`
	DRC     *string  `json:"drc" gorm:"column:drc;size:14"`
	Podnik  *string  `json:"podnik" gorm:"size:35"`
	Podnik2 *string  `json:"podnik2" gorm:"size:35"`
	Adresa  *string  `json:"adresa" gorm:"size:35"`
	PSC     *string  `json:"psc" gorm:"column:psc;size:5"`
	Mesto   *string  `json:"mesto" gorm:"size:25"`
	Stat    *string  `json:"stat" gorm:"size:25"`
	Tel     *string  `json:"tel" gorm:"size:25"`
	Mobil   *string  `json:"mobil" gorm:"size:14"`
	Mobil2  *string  `json:"mobil2" gorm:"size:14"`
	PlatDPH *string  `json:"plat_dph" gorm:"column:plat_dph;size:1"`
	Zlava   *float64 `json:"zlava"`
	Cuct    *string  `json:"cuct" gorm:"size:14"`
	Banka   *string  `json:"banka" gorm:"size:18"`
	KodBan  *string  `json:"kod_ban" gorm:"column:kod_ban;size:4"`
	Kod     *float64 `json:"kod"`
	KPodnik *string  `json:"kpodnik" gorm:"column:kpodnik;size:25"`
	KAdresa *string  `json:"kadresa" gorm:"column:kadresa;size:25"`
	KPSC    *string  `json:"kpsc" gorm:"column:kpsc;size:5"`
	KMesto  *string  `json:"kmesto" gorm:"column:kmesto;size:18"`
	ZHZ     *string  `json:"zhz" gorm:"column:zhz;size:3"`
	Lok     *string  `json:"lok" gorm:"size:3"`
	Fy      *string  `json:"fy" gorm:"size:1"`
	Sk      *string  `json:"sk" gorm:"size:1"`
	Email   *string  `json:"email" gorm:"size:50"`

	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Customer) TableName() string {
	return "customers"
}

// CompanyName returns the customer's display name.
func (c *Customer) CompanyName() string {
	if c == nil || c.Podnik == nil || *c.Podnik == "" {
		return "Neznámy zákazník"
	}
	return *c.Podnik
}


// Address returns the customer's billing address or an empty string.
func (c *Customer) Address() string {
	if c == nil || c.Adresa == nil {
		return ""
	}
	return *c.Adresa
}
