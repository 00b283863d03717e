package installer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

func onTelegram(st *InstallState) bool {
	return st.Is(keyChannel, "telegram")
}

// NewTelegramTokenStep collects the Telegram bot token
func NewTelegramTokenStep() Step {
	s := newTextStep("Enter your Telegram Bot Token:", "CONDO_TELEGRAM_TOKEN", "123456789:ABCDEF...")
	s.input.EchoMode = textinput.EchoPassword
	s.input.EchoCharacter = '•'
	s.when = onTelegram
	s.validate = func(v string) error {
		if v == "" {
			return fmt.Errorf("token is required")
		}
		return nil
	}
	return s
}

// NewAllowedChatsStep optionally restricts the bot to a set of chat IDs.
func NewAllowedChatsStep() Step {
	s := newTextStep("Allowed Telegram chat IDs, comma separated (empty allows everyone):",
		"CONDO_TELEGRAM_ALLOWED_CHATS", "-1001234567890,123456789")
	s.when = onTelegram
	s.validate = validateChatIDs
	return s
}

func validateChatIDs(v string) error {
	if v == "" {
		return nil
	}
	for _, part := range strings.Split(v, ",") {
		if _, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err != nil {
			return fmt.Errorf("invalid chat id %q", strings.TrimSpace(part))
		}
	}
	return nil
}
