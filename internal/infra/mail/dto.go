package mail

type ReminderEmailData struct {
	Name     string
	Activity string
	Company  string
	At       string
}

type LeadAssignedEmailData struct {
	Name    string
	Company string
	Link    string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// AppURL prefixes lead links; empty leaves them out.
	AppURL string
}
