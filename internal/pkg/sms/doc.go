// Package sms abstracts an SMS/WhatsApp gateway used for text-message delivery.
//
// It includes:
//   - A provider-agnostic Message type and Sender interface.
//   - An HTTP JSON gateway implementation.
package sms
