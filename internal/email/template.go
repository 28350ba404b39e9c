package email

import (
	"fmt"
	"net/url"
	"time"

	"github.com/founderflow/founderflow/internal/core/ports"
)

// VerifyURL builds the identity-provider verification link embedded in
// confirmation and recovery emails.
func VerifyURL(authURL, token, actionType, redirectTo string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("type", actionType)
	q.Set("redirect_to", redirectTo)
	return authURL + "/auth/v1/verify?" + q.Encode()
}

// Confirmation is the sign-up verification email.
func Confirmation(to, link string) ports.EmailMessage {
	return ports.EmailMessage{
		To:      []string{to},
		Kind:    "confirmation",
		Subject: "Confirm your email - FounderFlow",
		HTML: layout(
			"Confirm your email",
			fmt.Sprintf(`Thanks for signing up for <strong>FounderFlow</strong>!</p>
              <p style="color: #71717a; font-size: 16px; line-height: 24px; margin: 0 0 32px 0;">
                Please confirm your email address (%s) by clicking the button below:`, to),
			link,
			"Verify Email",
		),
	}
}

// PasswordReset is the account-recovery email.
func PasswordReset(to, link string) ports.EmailMessage {
	return ports.EmailMessage{
		To:      []string{to},
		Kind:    "recovery",
		Subject: "Reset your password - FounderFlow",
		HTML: layout(
			"Reset your password",
			"We received a request to reset the password for your <strong>FounderFlow</strong> account. Click the button below to choose a new one:",
			link,
			"Reset Password",
		),
	}
}

// layout renders the shared FounderFlow email shell.
func layout(title, intro, link, action string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
      <html>
        <head>
          <meta charset="utf-8">
          <meta name="viewport" content="width=device-width, initial-scale=1.0">
          <title>%[1]s</title>
        </head>
        <body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'Roboto', sans-serif; background-color: #f4f4f5;">
          <div style="max-width: 600px; margin: 40px auto; background-color: #ffffff; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
            <div style="padding: 40px 32px; text-align: center;">
              <h1 style="color: #18181b; font-size: 28px; margin: 0 0 16px 0; font-weight: 700;">%[1]s</h1>
              <p style="color: #71717a; font-size: 16px; line-height: 24px; margin: 0 0 32px 0;">
                %[2]s
              </p>
              <a href="%[3]s" style="display: inline-block; padding: 14px 32px; background-color: #18181b; color: #ffffff; text-decoration: none; border-radius: 6px; font-weight: 600; font-size: 16px;">
                %[4]s
              </a>
              <p style="color: #a1a1aa; font-size: 14px; line-height: 20px; margin: 32px 0 0 0;">
                If you didn't request this, you can safely ignore this email.
              </p>
            </div>
            <div style="padding: 24px 32px; background-color: #fafafa; border-top: 1px solid #e4e4e7;">
              <p style="color: #a1a1aa; font-size: 12px; line-height: 18px; margin: 0; text-align: center;">
                &copy; %[5]d FounderFlow. All rights reserved.
              </p>
            </div>
          </div>
        </body>
      </html>`, title, intro, link, action, time.Now().Year())
}
