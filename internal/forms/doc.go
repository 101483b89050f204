// Package forms owns form submit lifecycles and pre-network validation.
//
// Each screen's form pairs a payload struct (validated declaratively
// with go-playground/validator tags) with a Form tracking a single
// tagged lifecycle value: Idle, Submitting, Succeeded or Failed. Begin
// refuses re-entry while a submit is in flight, and validation failures
// settle the form before any request is issued.
package forms
