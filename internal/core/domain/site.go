package domain

// NavItem is a link in the site navigation or footer.
type NavItem struct {
	Name string `json:"name" yaml:"name"`
	Href string `json:"href" yaml:"href"`
}

// Hero is the landing page header block.
type Hero struct {
	Tagline     string   `json:"tagline" yaml:"tagline"`
	Headline    string   `json:"headline" yaml:"headline"`
	Highlight   string   `json:"highlight" yaml:"highlight"`
	Subheadline string   `json:"subheadline" yaml:"subheadline"`
	Pills       []string `json:"pills" yaml:"pills"`
	PrimaryCTA  NavItem  `json:"primary_cta" yaml:"primary_cta"`
}

// Insight is a short differentiator statement.
type Insight struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Service is an offering shown in the services grid.
type Service struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// ProcessStep is one numbered step of the engagement process.
type ProcessStep struct {
	Number      string `json:"number" yaml:"number"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Outcome     string `json:"outcome" yaml:"outcome"`
}

// CaseStudy is an example solution.
type CaseStudy struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// AboutDetail is an entry inside an about tab (a value or a team group).
type AboutDetail struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// AboutTab is one tab of the about section.
type AboutTab struct {
	ID          string        `json:"id" yaml:"id"`
	Label       string        `json:"label" yaml:"label"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Details     []AboutDetail `json:"details,omitempty" yaml:"details"`
}

// Footer holds the closing block and contact details.
type Footer struct {
	Blurb string `json:"blurb" yaml:"blurb"`
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone" yaml:"phone"`
}

// SiteContent is the full set of marketing copy for the landing page.
type SiteContent struct {
	Title              string        `json:"title" yaml:"title"`
	Description        string        `json:"description" yaml:"description"`
	Nav                []NavItem     `json:"nav" yaml:"nav"`
	Hero               Hero          `json:"hero" yaml:"hero"`
	Insights           []Insight     `json:"insights" yaml:"insights"`
	ServiceCategories  []string      `json:"service_categories" yaml:"service_categories"`
	Services           []Service     `json:"services" yaml:"services"`
	Process            []ProcessStep `json:"process" yaml:"process"`
	CaseStudies        []CaseStudy   `json:"case_studies" yaml:"case_studies"`
	About              []AboutTab    `json:"about" yaml:"about"`
	SchedulingBenefits []string      `json:"scheduling_benefits" yaml:"scheduling_benefits"`
	Footer             Footer        `json:"footer" yaml:"footer"`
}

// Scheduling describes the embedded booking calendar.
type Scheduling struct {
	Configured bool     `json:"configured"`
	EmbedURL   string   `json:"embed_url,omitempty"`
	Benefits   []string `json:"benefits"`
}
