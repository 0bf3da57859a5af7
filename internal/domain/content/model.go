package content

import (
	"errors"
	"fmt"
)

// Site holds the marketing copy for every page.
// Long-form fields (Intro, Mission, Description) are Markdown.
type Site struct {
	Name    string      `yaml:"name"`
	Tagline string      `yaml:"tagline"`
	Hero    HeroPage    `yaml:"hero"`
	About   AboutPage   `yaml:"about"`
	Contact ContactPage `yaml:"contact"`
}

// HeroPage is the landing page copy.
type HeroPage struct {
	Headline        string    `yaml:"headline"`
	Highlight       string    `yaml:"highlight"`
	Intro           string    `yaml:"intro"`
	ImageAlt        string    `yaml:"image_alt"`
	TrustIndicators []Trust   `yaml:"trust_indicators"`
	Features        []Feature `yaml:"features"`
}

// Trust is a short credibility marker shown under the CTA.
type Trust struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
}

// Feature is an icon card with a title and description.
type Feature struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Stat is a headline number on the About page.
type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// TeamMember is a member of the medical team.
type TeamMember struct {
	Name        string   `yaml:"name"`
	Role        string   `yaml:"role"`
	Specialty   string   `yaml:"specialty"`
	Credentials []string `yaml:"credentials"`
}

// AboutPage is the About page copy.
type AboutPage struct {
	Badge        string       `yaml:"badge"`
	Headline     string       `yaml:"headline"`
	Highlight    string       `yaml:"highlight"`
	Intro        string       `yaml:"intro"`
	ImageAlt     string       `yaml:"image_alt"`
	Stats        []Stat       `yaml:"stats"`
	WhyTitle     string       `yaml:"why_title"`
	WhyIntro     string       `yaml:"why_intro"`
	Features     []Feature    `yaml:"features"`
	TeamTitle    string       `yaml:"team_title"`
	TeamIntro    string       `yaml:"team_intro"`
	Team         []TeamMember `yaml:"team"`
	MissionTitle string       `yaml:"mission_title"`
	Mission      string       `yaml:"mission"`
}

// InfoCard is a contact channel card.
type InfoCard struct {
	Icon      string `yaml:"icon"`
	Title     string `yaml:"title"`
	Content   string `yaml:"content"`
	Subtitle  string `yaml:"subtitle"`
	Highlight bool   `yaml:"highlight"`
}

// ContactPage is the Contact page copy.
type ContactPage struct {
	Badge           string     `yaml:"badge"`
	Headline        string     `yaml:"headline"`
	Highlight       string     `yaml:"highlight"`
	Intro           string     `yaml:"intro"`
	EmergencyNotice string     `yaml:"emergency_notice"`
	InfoTitle       string     `yaml:"info_title"`
	InfoIntro       string     `yaml:"info_intro"`
	Cards           []InfoCard `yaml:"cards"`
	FAQTitle        string     `yaml:"faq_title"`
	FAQIntro        string     `yaml:"faq_intro"`
	Privacy         string     `yaml:"privacy"`
}

// ErrEmptyName is returned when the site has no name.
var ErrEmptyName = errors.New("site name cannot be empty")

// Validate checks that every section the pages depend on is present.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (s Site) Validate() error {
	if s.Name == "" {
		return ErrEmptyName
	}
	if s.Hero.Headline == "" {
		return errors.New("hero headline cannot be empty")
	}
	if err := validateFeatures("hero", s.Hero.Features); err != nil {
		return err
	}
	if s.About.Headline == "" {
		return errors.New("about headline cannot be empty")
	}
	if err := validateFeatures("about", s.About.Features); err != nil {
		return err
	}
	for i, m := range s.About.Team {
		if m.Name == "" || m.Role == "" {
			return fmt.Errorf("about team member %d needs a name and role", i)
		}
	}
	if s.About.Mission == "" {
		return errors.New("about mission cannot be empty")
	}
	if len(s.Contact.Cards) == 0 {
		return errors.New("contact page needs at least one info card")
	}
	for i, c := range s.Contact.Cards {
		if c.Title == "" || c.Content == "" {
			return fmt.Errorf("contact card %d needs a title and content", i)
		}
	}
	return nil
}

func validateFeatures(section string, fs []Feature) error {
	if len(fs) == 0 {
		return fmt.Errorf("%s needs at least one feature", section)
	}
	for i, f := range fs {
		if f.Title == "" {
			return fmt.Errorf("%s feature %d has no title", section, i)
		}
	}
	return nil
}
