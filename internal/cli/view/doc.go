// Package view renders each client route as text.
//
// A view reads form fields through a Prompter, calls the backend
// services and writes through an output.Printer. A view may return the
// path to navigate to next; Screens follows it through the navigator so
// guards run on every hop.
package view
