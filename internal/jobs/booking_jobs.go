package jobs

import (
	"context"
	"time"

	"github.com/mapsensemedia/betterrental-sub009/internal/logger"
	"github.com/mapsensemedia/betterrental-sub009/internal/pricing"
)

// MarkOverdueBookings marks bookings as OVERDUE if they are past their
// return_date and still ACTIVE. The late-fee grace period is deliberately
// not applied here; a rental minutes past due is already overdue for fleet
// planning even though it may owe nothing.
func (jr *JobRunner) MarkOverdueBookings() {
	jr.runWithRecovery("MarkOverdueBookings", func() {
		ctx := context.Background()

		query := `
			UPDATE bookings
			SET status = 'OVERDUE',
			    updated_on = NOW()
			WHERE status = 'ACTIVE'
			  AND return_date < $1
			RETURNING id, reference, customer_id, return_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to mark overdue bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id         int32
				reference  string
				customerID int32
				returnDate time.Time
			)
			if err := rows.Scan(&id, &reference, &customerID, &returnDate); err != nil {
				logger.Error("Failed to scan overdue booking", "error", err)
				continue
			}
			count++
			logger.Debug("Marked booking as overdue",
				"booking_id", id,
				"reference", reference,
				"customer_id", customerID,
				"return_date", returnDate)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue bookings", "error", err)
			return
		}

		logger.Info("Marked bookings as overdue", "count", count)
	})
}

// AssessLateFees recomputes the accruing late fee for every overdue booking
// from its price snapshot, so the ops console always shows what the customer
// currently owes. The final fee is fixed by RecordLateReturn when the
// vehicle actually comes back.
func (jr *JobRunner) AssessLateFees() {
	jr.runWithRecovery("AssessLateFees", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		table, err := jr.services.Settings.ResolveRateTable(ctx)
		if err != nil {
			logger.Error("Failed to resolve rate table", "error", err)
			return
		}

		bookings, err := jr.store.BookingRepository.ListOverdueActive(ctx, now.Format(time.RFC3339))
		if err != nil {
			logger.Error("Failed to list overdue bookings", "error", err)
			return
		}

		updated := 0
		for i := range bookings {
			b := &bookings[i]
			minutesLate := int(now.Sub(b.ReturnDate).Minutes())
			if minutesLate <= 0 {
				continue
			}
			dailyRate := b.DailyRate
			fee := pricing.CalculateLateFee(minutesLate, &dailyRate, table)
			if fee.Equal(b.LateFeeAmount) {
				continue
			}

			b.LateFeeAmount = fee
			if err := jr.store.BookingRepository.Update(ctx, b); err != nil {
				logger.Error("Failed to update late fee", "booking_id", b.ID, "error", err)
				continue
			}
			updated++
			logger.Debug("Assessed late fee",
				"booking_id", b.ID,
				"reference", b.Reference,
				"minutes_late", minutesLate,
				"late_fee", fee.StringFixed(2))
		}

		logger.Info("Assessed late fees", "updated", updated, "overdue", len(bookings))
	})
}

// SendReturnReminders emails customers whose rental is due back within the
// next 24 hours.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		query := `
			SELECT b.id, c.email, c.name
			FROM bookings b
			JOIN customers c ON c.id = b.customer_id
			WHERE b.status = 'ACTIVE'
			  AND b.return_date > $1
			  AND b.return_date <= $2
		`

		rows, err := jr.db.QueryContext(ctx, query, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to query upcoming returns", "error", err)
			return
		}
		defer rows.Close()

		type reminder struct {
			bookingID int32
			email     string
			name      string
		}
		var reminders []reminder
		for rows.Next() {
			var rem reminder
			if err := rows.Scan(&rem.bookingID, &rem.email, &rem.name); err != nil {
				logger.Error("Failed to scan reminder row", "error", err)
				continue
			}
			reminders = append(reminders, rem)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating upcoming returns", "error", err)
			return
		}

		sent := 0
		for _, rem := range reminders {
			booking, err := jr.store.BookingRepository.GetByID(ctx, rem.bookingID)
			if err != nil {
				logger.Error("Failed to load booking for reminder", "booking_id", rem.bookingID, "error", err)
				continue
			}
			if err := jr.services.Email.SendReturnReminder(ctx, rem.email, rem.name, booking); err != nil {
				logger.Error("Failed to send return reminder", "booking_id", rem.bookingID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent return reminders", "sent", sent, "due", len(reminders))
	})
}

// ReleaseDeposits auto-releases deposit holds for completed bookings whose
// return workflow reached closeout at least the configured number of days
// ago and no operator has released the hold manually.
func (jr *JobRunner) ReleaseDeposits() {
	jr.runWithRecovery("ReleaseDeposits", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Pricing.DepositAutoDays)

		query := `
			SELECT b.id
			FROM bookings b
			WHERE b.status = 'COMPLETED'
			  AND b.return_state = 'closeout_done'
			  AND b.updated_on < $1
			  AND (SELECT COALESCE(SUM(d.amount), 0) FROM deposit_entries d WHERE d.booking_id = b.id) > 0
		`

		rows, err := jr.db.QueryContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to query deposits for release", "error", err)
			return
		}
		defer rows.Close()

		var ids []int32
		for rows.Next() {
			var id int32
			if err := rows.Scan(&id); err != nil {
				logger.Error("Failed to scan deposit release row", "error", err)
				continue
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating deposit releases", "error", err)
			return
		}

		released := 0
		for _, id := range ids {
			// Operator 0 marks a system-initiated release in the ledger.
			if _, err := jr.services.Deposit.Release(ctx, 0, id, "deposit auto-released after closeout"); err != nil {
				logger.Error("Failed to auto-release deposit", "booking_id", id, "error", err)
				continue
			}
			released++
		}

		logger.Info("Auto-released deposits", "released", released, "eligible", len(ids))
	})
}
