package projections

import (
	"symptowise/internal/domain/contact"
	"symptowise/internal/domain/content"
)

// HomeView is the landing page.
type HomeView struct {
	Site content.Site
	Hero content.HeroPage
}

// AboutView is the About page.
type AboutView struct {
	Site  content.Site
	About content.AboutPage
}

// UrgencyChoice is one radio button of the urgency group.
type UrgencyChoice struct {
	Value   contact.Urgency
	Label   string
	Tone    string
	Checked bool
}

// ContactView is the Contact page with its form state.
type ContactView struct {
	Site      content.Site
	Contact   content.ContactPage
	Form      contact.Form
	Urgencies []UrgencyChoice
	Error     string // first validation or relay error, empty on a fresh form
}

// QueryGetHome builds the landing page view.
func QueryGetHome(site content.Site) HomeView {
	return HomeView{Site: site, Hero: site.Hero}
}

// QueryGetAbout builds the About page view.
func QueryGetAbout(site content.Site) AboutView {
	return AboutView{Site: site, About: site.About}
}

// QueryGetContact builds the Contact page view around the given form state.
// PRE: none
// POST: exactly one urgency is checked; an empty or unknown urgency checks the default
func QueryGetContact(site content.Site, form contact.Form, errMsg string) ContactView {
	checked := form.Urgency
	if !checked.Valid() {
		checked = contact.DefaultUrgency
	}
	choices := make([]UrgencyChoice, 0, len(contact.UrgencyOptions))
	for _, o := range contact.UrgencyOptions {
		choices = append(choices, UrgencyChoice{
			Value:   o.Value,
			Label:   o.Label,
			Tone:    o.Tone,
			Checked: o.Value == checked,
		})
	}
	return ContactView{
		Site:      site,
		Contact:   site.Contact,
		Form:      form,
		Urgencies: choices,
		Error:     errMsg,
	}
}
