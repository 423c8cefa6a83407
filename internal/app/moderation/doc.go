// Package moderation provides the profanity check applied to chat text.
//
// The chat core only sees the IsProfane method; the word list and matching
// rules live here.
package moderation
