package bootstrap

import (
	"time"

	"github.com/TAPAN-2835/Business-Website/config"
	"github.com/TAPAN-2835/Business-Website/contactform"
)

// AppConfig holds the site's own settings.
type AppConfig struct {
	// SiteFile overrides the built-in site.yaml content.
	SiteFile string
	// DBPath is the SQLite database; empty keeps messages in memory.
	DBPath string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	NotifyTo     []string

	// SubmitDelay simulates backend latency before a message is stored.
	SubmitDelay time.Duration
	// BannerTimeout is how long the success banner stays visible.
	BannerTimeout time.Duration
}

// NotifyEnabled reports whether SMTP notification is configured.
func (c AppConfig) NotifyEnabled() bool {
	return c.SMTPHost != "" && len(c.NotifyTo) > 0
}

// AppKeys are registered with config.Load as BIZSITE_* settings.
var AppKeys = []config.AppKey{
	{Name: "site_file", Default: "", Desc: "YAML file with site content (default: built-in)"},
	{Name: "db_path", Default: "data/bizsite.db", Desc: "SQLite database path; empty keeps messages in memory"},
	{Name: "smtp_host", Default: "", Desc: "SMTP host for new-message notifications; empty disables them"},
	{Name: "smtp_port", Default: 587, Desc: "SMTP port (465 implicit TLS, otherwise STARTTLS when offered)"},
	{Name: "smtp_username", Default: "", Desc: "SMTP username"},
	{Name: "smtp_password", Default: "", Desc: "SMTP password"},
	{Name: "smtp_from", Default: "", Desc: "Sender address of notifications"},
	{Name: "smtp_from_name", Default: "Website", Desc: "Sender display name of notifications"},
	{Name: "notify_to", Default: []string{}, Desc: "Recipients of new-message notifications"},
	{Name: "submit_delay", Default: "0s", Desc: "Simulated latency before storing a message"},
	{Name: "banner_timeout", Default: contactform.DefaultBannerTimeout.String(), Desc: "How long the success banner stays visible"},
}

func appConfigFrom(v config.AppConfigValues) AppConfig {
	return AppConfig{
		SiteFile:      v.String("site_file"),
		DBPath:        v.String("db_path"),
		SMTPHost:      v.String("smtp_host"),
		SMTPPort:      v.Int("smtp_port"),
		SMTPUsername:  v.String("smtp_username"),
		SMTPPassword:  v.String("smtp_password"),
		SMTPFrom:      v.String("smtp_from"),
		SMTPFromName:  v.String("smtp_from_name"),
		NotifyTo:      v.StringSlice("notify_to"),
		SubmitDelay:   v.Duration("submit_delay", 0),
		BannerTimeout: v.Duration("banner_timeout", contactform.DefaultBannerTimeout),
	}
}
