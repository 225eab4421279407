package content

// NewsArticle is a published news story.
type NewsArticle struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Category        string   `json:"category" yaml:"category"`
	Content         string   `json:"content" yaml:"content"`
	Excerpt         string   `json:"excerpt" yaml:"excerpt"`
	Image           string   `json:"image" yaml:"image"`
	ImageAlt        string   `json:"imageAlt" yaml:"imageAlt"`
	Author          string   `json:"author" yaml:"author"`
	PublishedAt     string   `json:"publishedAt" yaml:"publishedAt"`
	Featured        bool     `json:"featured" yaml:"featured"`
	Trending        bool     `json:"trending" yaml:"trending"`
	MetaTitle       string   `json:"metaTitle,omitempty" yaml:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty" yaml:"metaDescription,omitempty"`
	MetaKeywords    string   `json:"metaKeywords,omitempty" yaml:"metaKeywords,omitempty"`
	Tags            []string `json:"tags" yaml:"tags"`
	Slug            string   `json:"slug" yaml:"slug"`
}

func (n NewsArticle) SlugLabel() string { return n.Title }
func (n NewsArticle) SlugValue() string { return n.Slug }

func (n NewsArticle) WithSlug(s string) NewsArticle {
	n.Slug = s
	return n
}

// Product is a catalogue entry.
type Product struct {
	ID               string            `json:"id" yaml:"id"`
	Name             string            `json:"name" yaml:"name"`
	Category         string            `json:"category" yaml:"category"`
	Description      string            `json:"description" yaml:"description"`
	ShortDescription string            `json:"shortDescription" yaml:"shortDescription"`
	Image            string            `json:"image" yaml:"image"`
	ImageAlt         string            `json:"imageAlt" yaml:"imageAlt"`
	Gallery          []string          `json:"gallery" yaml:"gallery"`
	Price            float64           `json:"price" yaml:"price"`
	Specifications   map[string]string `json:"specifications" yaml:"specifications"`
	Featured         bool              `json:"featured" yaml:"featured"`
	ExternalLink     string            `json:"externalLink" yaml:"externalLink"`
	MetaTitle        string            `json:"metaTitle,omitempty" yaml:"metaTitle,omitempty"`
	MetaDescription  string            `json:"metaDescription,omitempty" yaml:"metaDescription,omitempty"`
	MetaKeywords     string            `json:"metaKeywords,omitempty" yaml:"metaKeywords,omitempty"`
	Slug             string            `json:"slug" yaml:"slug"`
}

func (p Product) SlugLabel() string { return p.Name }
func (p Product) SlugValue() string { return p.Slug }

func (p Product) WithSlug(s string) Product {
	p.Slug = s
	return p
}

// MediaItem is an entry of the media library.
type MediaItem struct {
	ID        string `json:"id" yaml:"id"`
	URL       string `json:"url" yaml:"url"`
	Name      string `json:"name" yaml:"name"`
	Alt       string `json:"alt" yaml:"alt"`
	Type      string `json:"type" yaml:"type"`
	Size      int64  `json:"size" yaml:"size"`
	UpdatedAt string `json:"updatedAt" yaml:"updatedAt"`
	// Key is the storage object key for uploaded files. Empty for external URLs.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
}

// CompanyConfig is the site-wide company profile shown in headers and footers.
type CompanyConfig struct {
	CompanyFullName     string `json:"companyFullName" yaml:"companyFullName"`
	CompanyAbbreviation string `json:"companyAbbreviation" yaml:"companyAbbreviation"`
	BrandName           string `json:"brandName" yaml:"brandName"`
	ContactNumber       string `json:"contactNumber" yaml:"contactNumber"`
	FaxNumber           string `json:"faxNumber" yaml:"faxNumber"`
	PhoneNumber         string `json:"phoneNumber" yaml:"phoneNumber"`
	Email               string `json:"email" yaml:"email"`
	WatermarkText       string `json:"watermarkText" yaml:"watermarkText"`
	CopyrightText       string `json:"copyrightText" yaml:"copyrightText"`
	ContactAddress      string `json:"contactAddress" yaml:"contactAddress"`
	QRCodeImage         string `json:"qrCodeImage" yaml:"qrCodeImage"`
	PostalCode          string `json:"postalCode" yaml:"postalCode"`
	CustomerServiceQQ   string `json:"customerServiceQQ" yaml:"customerServiceQQ"`
	RegistrationNumber  string `json:"registrationNumber" yaml:"registrationNumber"`
	DomainInfo          string `json:"domainInfo" yaml:"domainInfo"`
}
