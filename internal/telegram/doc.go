// Package telegram formats the daily match digest and sends it through the Telegram Bot API.
//
// The client talks to the Bot API with plain HTTP requests (sendMessage as a
// form POST, deleteWebhook as a GET). Markdown escaping and the API response
// envelope come from the telegram-bot-api package.
//
// Authentication requires a bot token (from @BotFather) and chat ID.
package telegram
