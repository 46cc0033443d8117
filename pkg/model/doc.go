// Package model describes the form fields the console renders and prompts for.
// Fields are derived from the request schemas in the API description and bound
// to the page element ids that hold their values.
package model
