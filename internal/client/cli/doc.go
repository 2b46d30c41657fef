// Package cli is the VetDesk application shell: it composes the two session
// managers (clinic staff and pet tutors), the scoped-animal context and the
// token store, boots both sessions, and runs the interactive command loop.
//
// The two session trees are gated independently: clinic commands consult
// only the clinic session's guard decision and tutor commands only the
// tutor session's. Clinic list commands thread the scoped-animal filter
// explicitly into every query.
package cli
