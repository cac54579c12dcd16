// Package http wires the REST surface for the rental platform: customer
// booking routes, the ops console (fleet, return workflow, deposits,
// incidents, tickets, pricing settings) and evidence photo storage.
package http

import (
	"net/http"

	"github.com/mapsensemedia/betterrental-sub009/internal/security"
	"github.com/mapsensemedia/betterrental-sub009/internal/service"
	"github.com/mapsensemedia/betterrental-sub009/internal/storage"

	"github.com/gorilla/mux"
)

type RouterDeps struct {
	Tokens      security.TokenManager
	BookingSvc  service.BookingService
	FleetSvc    service.FleetService
	DepositSvc  service.DepositService
	IncidentSvc service.IncidentService
	TicketSvc   service.TicketService
	SettingsSvc service.SettingsService
	PhotoStore  storage.Store
	MaxUploadMB int64
}

func NewRouter(deps RouterDeps) http.Handler {
	auth := newAuthMiddleware(deps.Tokens)

	bookings := NewBookingHandler(deps.BookingSvc)
	returns := NewReturnsHandler(deps.BookingSvc)
	fleet := NewFleetHandler(deps.FleetSvc)
	deposits := NewDepositHandler(deps.DepositSvc)
	incidents := NewIncidentHandler(deps.IncidentSvc, deps.PhotoStore, deps.MaxUploadMB)
	tickets := NewTicketHandler(deps.TicketSvc)
	settings := NewSettingsHandler(deps.SettingsSvc)

	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public
	v1.HandleFunc("/quotes", bookings.CreateQuote).Methods(http.MethodPost)
	v1.HandleFunc("/categories", fleet.ListCategories).Methods(http.MethodGet)
	v1.HandleFunc("/photos/{key:.+}", incidents.ServePhoto).Methods(http.MethodGet)

	// Customer
	v1.HandleFunc("/bookings", auth.requireCustomer(bookings.CreateBooking)).Methods(http.MethodPost)
	v1.HandleFunc("/bookings", auth.requireCustomer(bookings.ListMyBookings)).Methods(http.MethodGet)
	v1.HandleFunc("/bookings/{id:[0-9]+}", auth.requireCustomer(bookings.GetBooking)).Methods(http.MethodGet)
	v1.HandleFunc("/bookings/ref/{ref}", auth.requireCustomer(bookings.GetBookingByReference)).Methods(http.MethodGet)
	v1.HandleFunc("/bookings/{id:[0-9]+}/checkout", auth.requireCustomer(bookings.Checkout)).Methods(http.MethodPost)
	v1.HandleFunc("/bookings/{id:[0-9]+}/cancel", auth.requireCustomer(bookings.CancelBooking)).Methods(http.MethodPost)
	v1.HandleFunc("/tickets", auth.requireCustomer(tickets.Open)).Methods(http.MethodPost)
	v1.HandleFunc("/tickets/{id:[0-9]+}", auth.requireCustomer(tickets.GetTicket)).Methods(http.MethodGet)

	// Ops console
	ops := v1.PathPrefix("/ops").Subrouter()
	ops.HandleFunc("/bookings", auth.requireOps(bookings.ListBookings)).Methods(http.MethodGet)
	ops.HandleFunc("/bookings/{id:[0-9]+}/activate", auth.requireOps(bookings.Activate)).Methods(http.MethodPost)
	ops.HandleFunc("/bookings/{id:[0-9]+}/return", auth.requireOps(returns.StartReturn)).Methods(http.MethodPost)
	ops.HandleFunc("/bookings/{id:[0-9]+}/return/steps/{step}", auth.requireOps(returns.AdvanceStep)).Methods(http.MethodPost)
	ops.HandleFunc("/bookings/{id:[0-9]+}/return/progress", auth.requireOps(returns.Progress)).Methods(http.MethodGet)
	ops.HandleFunc("/bookings/{id:[0-9]+}/complete", auth.requireOps(returns.Complete)).Methods(http.MethodPost)
	ops.HandleFunc("/bookings/{id:[0-9]+}/complete/bypass", auth.requireManager(returns.CompleteWithBypass)).Methods(http.MethodPost)
	ops.HandleFunc("/bookings/{id:[0-9]+}/late-return", auth.requireOps(returns.RecordLateReturn)).Methods(http.MethodPost)

	ops.HandleFunc("/bookings/{id:[0-9]+}/deposit", auth.requireOps(deposits.Ledger)).Methods(http.MethodGet)
	ops.HandleFunc("/bookings/{id:[0-9]+}/deposit/release", auth.requireOps(deposits.Release)).Methods(http.MethodPost)
	ops.HandleFunc("/bookings/{id:[0-9]+}/deposit/deduct", auth.requireManager(deposits.Deduct)).Methods(http.MethodPost)

	ops.HandleFunc("/vehicles", auth.requireOps(fleet.AddVehicle)).Methods(http.MethodPost)
	ops.HandleFunc("/vehicles", auth.requireOps(fleet.ListVehicles)).Methods(http.MethodGet)
	ops.HandleFunc("/vehicles/{id:[0-9]+}", auth.requireOps(fleet.GetVehicle)).Methods(http.MethodGet)
	ops.HandleFunc("/vehicles/{id:[0-9]+}", auth.requireOps(fleet.UpdateVehicle)).Methods(http.MethodPut)
	ops.HandleFunc("/vehicles/{id:[0-9]+}", auth.requireOps(fleet.RetireVehicle)).Methods(http.MethodDelete)

	ops.HandleFunc("/incidents", auth.requireOps(incidents.Report)).Methods(http.MethodPost)
	ops.HandleFunc("/incidents", auth.requireOps(incidents.ListOpen)).Methods(http.MethodGet)
	ops.HandleFunc("/incidents/{id:[0-9]+}", auth.requireOps(incidents.GetIncident)).Methods(http.MethodGet)
	ops.HandleFunc("/incidents/{id:[0-9]+}/review", auth.requireOps(incidents.Review)).Methods(http.MethodPost)
	ops.HandleFunc("/bookings/{id:[0-9]+}/incidents", auth.requireOps(incidents.ListByBooking)).Methods(http.MethodGet)
	ops.HandleFunc("/bookings/{id:[0-9]+}/photos", auth.requireOps(incidents.UploadPhoto)).Methods(http.MethodPut)
	ops.HandleFunc("/bookings/{id:[0-9]+}/photos", auth.requireOps(incidents.ListPhotos)).Methods(http.MethodGet)

	ops.HandleFunc("/tickets", auth.requireOps(tickets.ListTickets)).Methods(http.MethodGet)
	ops.HandleFunc("/tickets/{id:[0-9]+}/assign", auth.requireOps(tickets.Assign)).Methods(http.MethodPost)
	ops.HandleFunc("/tickets/{id:[0-9]+}/resolve", auth.requireOps(tickets.Resolve)).Methods(http.MethodPost)

	ops.HandleFunc("/settings", auth.requireOps(settings.ListSettings)).Methods(http.MethodGet)
	ops.HandleFunc("/settings", auth.requireManager(settings.UpdateSetting)).Methods(http.MethodPut)
	ops.HandleFunc("/settings/rate-table", auth.requireOps(settings.GetRateTable)).Methods(http.MethodGet)

	return r
}
