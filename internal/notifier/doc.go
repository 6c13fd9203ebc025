// Package notifier defines the delivery interface for the daily digest and
// the channels besides Telegram: a dry-run writer and an optional Twitter
// cross-post.
package notifier
