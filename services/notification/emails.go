package notification

import (
	"fmt"
	"time"

	"opaleka/models"
)

// formatDate renders a "YYYY-MM-DD" booking date as a friendly long date.
// Unparseable input is passed through unchanged.
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

// formatTime renders a "HH:MM" booking time in 12-hour form.
func formatTime(clock string) string {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return clock
	}
	return t.Format("03:04 PM")
}

func bookingDetailRows(b *models.Booking) string {
	return fmt.Sprintf(`
      <table style="width:100%%;border-collapse:collapse;margin:20px 0;">
        <tr><td style="padding:8px;border:1px solid #e0e0e0;font-weight:bold;">Service</td><td style="padding:8px;border:1px solid #e0e0e0;">%s</td></tr>
        <tr><td style="padding:8px;border:1px solid #e0e0e0;font-weight:bold;">Date</td><td style="padding:8px;border:1px solid #e0e0e0;">%s</td></tr>
        <tr><td style="padding:8px;border:1px solid #e0e0e0;font-weight:bold;">Time</td><td style="padding:8px;border:1px solid #e0e0e0;">%s</td></tr>
        <tr><td style="padding:8px;border:1px solid #e0e0e0;font-weight:bold;">Price</td><td style="padding:8px;border:1px solid #e0e0e0;">N$%.2f</td></tr>
      </table>`,
		b.ServiceName, formatDate(b.Date), formatTime(b.Time), b.Price)
}

func newBookingEmail(b *models.Booking, client, provider *models.User) (string, string) {
	subject := fmt.Sprintf("New Booking Notification - %s", b.ServiceName)
	body := fmt.Sprintf(`
    <div style="font-family:Arial,sans-serif;padding:20px;">
      <h2 style="color:#1a237e;">New Booking Received</h2>
      <p>Dear <strong>%s</strong>,</p>
      <p>You have received a new booking request from <strong>%s</strong> (%s, %s) at %s.</p>
      %s
      <p>To view more details, please log in to your dashboard.</p>
      <p>Best regards,<br><strong>Opaleka Team</strong></p>
    </div>`,
		provider.Name, client.Name, client.Email, client.Phone, b.Address, bookingDetailRows(b))
	return subject, body
}

func bookingDecisionEmail(b *models.Booking, client *models.User, accepted bool) (string, string) {
	if accepted {
		subject := fmt.Sprintf("Your Booking is Confirmed - %s", b.ServiceName)
		body := fmt.Sprintf(`
      <div style="font-family:Arial,sans-serif;padding:20px;color:#333;">
        <h2 style="color:#1a237e;">Your Booking is Confirmed</h2>
        <p>Dear <strong>%s</strong>,</p>
        <p>Your booking for <strong>%s</strong> has been confirmed.</p>
        %s
        <p>Thank you for choosing Opaleka!</p>
        <p>Best Regards,<br><strong>Opaleka Team</strong></p>
      </div>`, client.Name, b.ServiceName, bookingDetailRows(b))
		return subject, body
	}

	subject := fmt.Sprintf("Booking Rejected - %s", b.ServiceName)
	body := fmt.Sprintf(`
    <div style="font-family:Arial,sans-serif;padding:20px;color:#333;">
      <h2 style="color:#1a237e;">Your Booking Request Has Been Rejected</h2>
      <p>Dear <strong>%s</strong>,</p>
      <p>We regret to inform you that your booking request for <strong>%s</strong> has been rejected.</p>
      %s
      <p>You may try booking another provider or rescheduling your appointment.</p>
      <p>Best Regards,<br><strong>Opaleka Team</strong></p>
    </div>`, client.Name, b.ServiceName, bookingDetailRows(b))
	return subject, body
}

func bookingCompletedEmail(b *models.Booking, client, provider *models.User) (string, string) {
	subject := fmt.Sprintf("Job Completed - %s", b.ServiceName)
	body := fmt.Sprintf(`
    <div style="font-family:Arial,sans-serif;padding:20px;color:#333;">
      <h2 style="color:#1a237e;">Your Job is Completed</h2>
      <p>Dear <strong>%s</strong>,</p>
      <p>Your booking for <strong>%s</strong> with %s has been completed.</p>
      %s
      <p>We hope you had a great experience! Please take a moment to <strong>rate your service provider</strong>.</p>
      <p>Best Regards,<br><strong>Opaleka Team</strong></p>
    </div>`, client.Name, b.ServiceName, provider.Name, bookingDetailRows(b))
	return subject, body
}

func verificationOutcomeEmail(user *models.User, status string, fee float64) (string, string) {
	if status == models.VerificationVerified {
		subject := "Your Opaleka Account Has Been Verified"
		body := fmt.Sprintf(`
      <div style="font-family:Arial,sans-serif;padding:20px;">
        <h2 style="color:#00AEEF;">Congratulations, %s!</h2>
        <p>Your account has been verified. You can now receive client requests.</p>
        <p>After your <strong>first booking</strong>, a payment of <strong>NAD %.0f</strong> is required every 30 days to keep your account active.</p>
        <p>Best Regards,<br><strong>Opaleka Team</strong></p>
      </div>`, user.Name, fee)
		return subject, body
	}

	subject := "Your Opaleka Verification Was Not Approved"
	body := fmt.Sprintf(`
    <div style="font-family:Arial,sans-serif;padding:20px;">
      <h2 style="color:#E74C3C;">Verification Update</h2>
      <p>Dear %s,</p>
      <p>Unfortunately we could not verify your submitted documents. Please review them and submit again.</p>
      <p>Best Regards,<br><strong>Opaleka Team</strong></p>
    </div>`, user.Name)
	return subject, body
}

func paymentInsufficientEmail(user *models.User, amount, required float64) (string, string) {
	subject := "Payment Received - Insufficient Amount"
	body := fmt.Sprintf(`
    <div style="font-family:Arial,sans-serif;padding:20px;">
      <p>Dear %s,</p>
      <p>We have received your payment of NAD %.2f. Unfortunately, this amount does not meet the required NAD %.0f to activate your account.</p>
      <p>Please complete the remaining payment of NAD %.2f to activate your account.</p>
      <p>Best regards,<br><strong>Opaleka Team</strong></p>
    </div>`, user.Name, amount, required, required-amount)
	return subject, body
}

func paymentConfirmedEmail(user *models.User, amount float64) (string, string) {
	subject := "Payment Confirmation - Your Account is Now Active!"
	body := fmt.Sprintf(`
    <div style="font-family:Arial,sans-serif;padding:20px;">
      <h2 style="color:#00AEEF;">Payment Confirmed!</h2>
      <p>Dear %s,</p>
      <p>We have successfully received your payment of <strong>NAD %.2f</strong>. Your account is now active, and you can start receiving client bookings.</p>
      <p>Make sure your profile and service listings are up to date for the best experience.</p>
      <p>Thank you for choosing Opaleka!</p>
      <p>Best Regards,<br><strong>Opaleka Team</strong></p>
    </div>`, user.Name, amount)
	return subject, body
}

func paymentReminderEmail(user *models.User, paymentStatus string, fee float64) (string, string) {
	subject := "Opaleka Account Reminder"
	var lead string
	if paymentStatus == models.PaymentFree {
		lead = fmt.Sprintf("To continue receiving bookings and gain full access to Opaleka's features, ensure your account is active with a minimum payment of NAD %.0f.", fee)
	} else {
		lead = fmt.Sprintf("To restore visibility and resume bookings, a minimum payment of NAD %.0f is required.", fee)
	}
	body := fmt.Sprintf(`
    <div style="font-family:Arial,sans-serif;padding:20px;">
      <p>Dear %s,</p>
      <p>%s</p>
      <p>Best Regards,<br><strong>Opaleka Team</strong></p>
    </div>`, user.Name, lead)
	return subject, body
}
