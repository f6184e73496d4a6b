package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ivanoskov/timework_bot/internal/model"
)

// fmtMoney форматирует сумму с кодом валюты ("12.50 EUR", "0.00" без валюты).
func fmtMoney(value float64, currency string) string {
	return strings.TrimSpace(fmt.Sprintf("%.2f %s", value, currency))
}

// renderProfile собирает текст карточки профиля. Значения показываются
// как сохранены: повторное округление не применяется.
func renderProfile(user *model.User) string {
	currency := user.Currency
	if currency == "" {
		currency = "—"
	}

	rate := "—"
	if user.Rate != nil {
		rate = strconv.FormatFloat(*user.Rate, 'f', -1, 64)
	}

	shiftLine := "Не начат"
	if user.ShiftStart != nil {
		shiftLine = fmt.Sprintf("с %s UTC", user.ShiftStart.Format("2006-01-02 15:04:05"))
	}

	return fmt.Sprintf(
		"👤 Твой профиль:\n"+
			"• Валюта: %s\n"+
			"• Ставка: %s %s/ч\n"+
			"• Всего отработано: %.2f ч\n"+
			"• Заработано: %s\n"+
			"• 💸 Взято авансом: %s\n"+
			"• Пропусков: %d\n"+
			"• Выходных: %d\n"+
			"• Текущая смена: %s",
		currency,
		rate, user.Currency,
		user.TotalHours,
		fmtMoney(user.TotalEarned, user.Currency),
		fmtMoney(user.AdvanceTotal, user.Currency),
		user.Skips,
		user.DaysOff,
		shiftLine,
	)
}
