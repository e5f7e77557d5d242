// Package views renders the admin pages as templ components. The pages are
// deliberately bare server-rendered forms -- small enough that they are
// composed directly in Go with templ.ComponentFunc instead of generated
// .templ templates.
package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// UserRow is one line of the user listing.
type UserRow struct {
	ID        int
	Username  string
	Email     string
	CreatedAt string
}

// SettingRow is one provider form on the settings page.
type SettingRow struct {
	Provider  string
	Host      string
	Port      int
	Username  string
	Password  string
	Secure    bool
	UpdatedAt string
}

// page wraps body markup in the shared HTML shell.
func page(title string, body func(w io.Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s - mailadmin</title>`, html.EscapeString(title))
		io.WriteString(w, `<meta name="viewport" content="width=device-width, initial-scale=1">`)
		io.WriteString(w, `<style>body{font-family:sans-serif;max-width:60rem;margin:2rem auto;padding:0 1rem}table{border-collapse:collapse;width:100%}td,th{border:1px solid #ccc;padding:.4rem;text-align:left}.flash-success{color:#070;border:1px solid #070;padding:.5rem;margin:.5rem 0}.flash-error{color:#a00;border:1px solid #a00;padding:.5rem;margin:.5rem 0}nav a{margin-right:1rem}fieldset{margin:1rem 0}</style>`)
		io.WriteString(w, `</head><body>`)
		body(w)
		io.WriteString(w, `</body></html>`)
		return nil
	})
}

// navBar writes the authenticated navigation header.
func navBar(w io.Writer, username string) {
	io.WriteString(w, `<nav><a href="/dashboard">Dashboard</a><a href="/users">Users</a><a href="/settings">Settings</a><a href="/reports">Reports</a><a href="/logout">Logout</a>`)
	fmt.Fprintf(w, `<span>Signed in as %s</span></nav><hr>`, html.EscapeString(username))
}

// flashBanners writes the one-shot status banners when present.
func flashBanners(w io.Writer, success, errMsg string) {
	if success != "" {
		fmt.Fprintf(w, `<div class="flash-success">%s</div>`, html.EscapeString(success))
	}
	if errMsg != "" {
		fmt.Fprintf(w, `<div class="flash-error">%s</div>`, html.EscapeString(errMsg))
	}
}

// LoginPage renders the login form. errMsg is shown inline above the form;
// username is echoed back after a failed attempt.
func LoginPage(csrfToken, username, errMsg string) templ.Component {
	return page("Login", func(w io.Writer) {
		io.WriteString(w, `<h1>mailadmin</h1>`)
		flashBanners(w, "", errMsg)
		io.WriteString(w, `<form method="post" action="/login">`)
		fmt.Fprintf(w, `<input type="hidden" name="csrf_token" value="%s">`, html.EscapeString(csrfToken))
		fmt.Fprintf(w, `<p><label>Username <input type="text" name="username" value="%s" required></label></p>`, html.EscapeString(username))
		io.WriteString(w, `<p><label>Password <input type="password" name="password" required></label></p>`)
		io.WriteString(w, `<p><button type="submit">Sign in</button></p></form>`)
	})
}

// DashboardPage renders the authenticated landing page.
func DashboardPage(username string) templ.Component {
	return page("Dashboard", func(w io.Writer) {
		navBar(w, username)
		fmt.Fprintf(w, `<h1>Welcome, %s</h1><p>Use the navigation above to manage users and SMTP settings.</p>`, html.EscapeString(username))
	})
}

// UsersPage renders the user listing.
func UsersPage(username string, users []UserRow) templ.Component {
	return page("Users", func(w io.Writer) {
		navBar(w, username)
		io.WriteString(w, `<h1>Users</h1><table><tr><th>ID</th><th>Username</th><th>Email</th><th>Created</th></tr>`)
		for _, u := range users {
			fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				u.ID, html.EscapeString(u.Username), html.EscapeString(u.Email), html.EscapeString(u.CreatedAt))
		}
		io.WriteString(w, `</table>`)
	})
}

// SettingsPage renders one edit form and one test-send form per provider,
// plus the drained flash banners.
func SettingsPage(username, csrfToken string, settings []SettingRow, success, errMsg string) templ.Component {
	return page("SMTP Settings", func(w io.Writer) {
		navBar(w, username)
		io.WriteString(w, `<h1>SMTP Settings</h1>`)
		flashBanners(w, success, errMsg)
		for _, s := range settings {
			fmt.Fprintf(w, `<fieldset><legend>%s</legend>`, html.EscapeString(s.Provider))
			io.WriteString(w, `<form method="post" action="/settings/smtp">`)
			fmt.Fprintf(w, `<input type="hidden" name="csrf_token" value="%s">`, html.EscapeString(csrfToken))
			fmt.Fprintf(w, `<input type="hidden" name="provider" value="%s">`, html.EscapeString(s.Provider))
			fmt.Fprintf(w, `<p><label>Host <input type="text" name="host" value="%s" required></label></p>`, html.EscapeString(s.Host))
			fmt.Fprintf(w, `<p><label>Port <input type="number" name="port" value="%d" required></label></p>`, s.Port)
			fmt.Fprintf(w, `<p><label>Username <input type="text" name="username" value="%s"></label></p>`, html.EscapeString(s.Username))
			fmt.Fprintf(w, `<p><label>Password <input type="password" name="password" value="%s"></label></p>`, html.EscapeString(s.Password))
			checked := ""
			if s.Secure {
				checked = " checked"
			}
			fmt.Fprintf(w, `<p><label>Secure <input type="checkbox" name="secure" value="true"%s></label></p>`, checked)
			fmt.Fprintf(w, `<p><small>Last updated %s</small></p>`, html.EscapeString(s.UpdatedAt))
			io.WriteString(w, `<p><button type="submit">Save</button></p></form>`)

			io.WriteString(w, `<form method="post" action="/settings/test-email">`)
			fmt.Fprintf(w, `<input type="hidden" name="csrf_token" value="%s">`, html.EscapeString(csrfToken))
			fmt.Fprintf(w, `<input type="hidden" name="provider" value="%s">`, html.EscapeString(s.Provider))
			io.WriteString(w, `<p><label>Test email <input type="email" name="testEmail"></label> <button type="submit">Send test</button></p></form>`)
			io.WriteString(w, `</fieldset>`)
		}
	})
}

// ReportsPage renders the reports placeholder.
func ReportsPage(username string) templ.Component {
	return page("Reports", func(w io.Writer) {
		navBar(w, username)
		io.WriteString(w, `<h1>Reports</h1><p>Reporting is not available yet.</p>`)
	})
}

// ErrorPage renders a generic error page for the central error handler.
func ErrorPage(code int, message string) templ.Component {
	return page("Error", func(w io.Writer) {
		fmt.Fprintf(w, `<h1>Error %d</h1><p>%s</p><p><a href="/">Back</a></p>`, code, html.EscapeString(message))
	})
}
