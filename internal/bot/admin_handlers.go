package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"renthour-bot/internal/pricing"
	"renthour-bot/internal/storage"
	"renthour-bot/pkg/currency"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// ADMIN COMMANDS

func (b *Bot) handleAdminCommand(ctx context.Context, chatID int64, command string, args []string) {
	if !b.isAdmin(chatID) {
		b.logger.Warn("Admin command from non-admin",
			zap.Int64("chat_id", chatID),
			zap.String("command", command))
		b.handleUnknownCommand(ctx, chatID)
		return
	}

	switch command {
	case "setprices":
		b.handleSetPrices(ctx, chatID, args)
	case "topup":
		b.handleTopUp(ctx, chatID, args)
	case "quote":
		b.handleQuote(ctx, chatID, args)
	case "listings":
		b.handleListings(ctx, chatID)
	case "stats":
		b.handleStats(ctx, chatID)
	case "export":
		b.handleExport(ctx, chatID, args)
	case "status":
		b.handleSetStatus(ctx, chatID, args)
	}
}

// handleSetPrices replaces a listing's price table.
// Usage: /setprices <listing_id> {"3":300,"6":550,"12":1000,"24":1800,"else":100}
func (b *Bot) handleSetPrices(ctx context.Context, chatID int64, args []string) {
	if len(args) < 2 {
		b.sendError(chatID, "Использование: /setprices <id аккаунта> <JSON прайса>")
		return
	}

	listingID := args[0]
	rawJSON := strings.Join(args[1:], " ")

	dec := json.NewDecoder(strings.NewReader(rawJSON))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		b.sendError(chatID, "Не удалось разобрать JSON: "+err.Error())
		return
	}

	if result := pricing.Validate(raw); !result.IsValid {
		var sb strings.Builder
		sb.WriteString("Прайс не сохранен, найдены ошибки:\n")
		for _, e := range result.Errors {
			sb.WriteString("• " + e + "\n")
		}
		b.sendError(chatID, sb.String())
		return
	}

	var table pricing.PriceTable
	if err := json.Unmarshal([]byte(rawJSON), &table); err != nil {
		b.sendError(chatID, "Не удалось разобрать JSON: "+err.Error())
		return
	}

	if err := b.storage.UpdatePriceTable(ctx, listingID, table); err != nil {
		b.logger.Error("Failed to update price table",
			zap.String("listing_id", listingID),
			zap.Error(err))
		b.sendError(chatID, "Не удалось сохранить прайс: "+err.Error())
		return
	}

	b.logger.Info("Price table updated",
		zap.Int64("admin_id", chatID),
		zap.String("listing_id", listingID))

	msg := tgbotapi.NewMessage(chatID, "✅ Прайс обновлен.\n\n"+
		FormatPriceRange("Новый прайс", pricing.BuildPriceRange(table)))
	msg.ParseMode = "Markdown"
	b.sendMessage(msg)
}

// handleTopUp credits a user's balance.
// Usage: /topup <user_id> <amount>
func (b *Bot) handleTopUp(ctx context.Context, chatID int64, args []string) {
	if len(args) != 2 {
		b.sendError(chatID, "Использование: /topup <id пользователя> <сумма>")
		return
	}

	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.sendError(chatID, "Некорректный id пользователя: "+args[0])
		return
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(args[1], ",", "."), 64)
	if err != nil || amount <= 0 {
		b.sendError(chatID, "Некорректная сумма: "+args[1])
		return
	}

	balance, err := b.storage.TopUpBalance(ctx, userID, amount)
	if err != nil {
		b.logger.Error("Failed to top up balance",
			zap.Int64("user_id", userID),
			zap.Error(err))
		b.sendError(chatID, "Не удалось пополнить баланс")
		return
	}

	b.logger.Info("Balance topped up",
		zap.Int64("admin_id", chatID),
		zap.Int64("user_id", userID),
		zap.Float64("amount", amount))

	b.sendMessage(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"✅ Баланс пользователя %d пополнен на %s, теперь %s",
		userID, currency.Format(amount), currency.Format(balance))))

	b.sendMessage(tgbotapi.NewMessage(userID, fmt.Sprintf(
		"💳 Ваш баланс пополнен на %s. Текущий баланс: %s",
		currency.Format(amount), currency.Format(balance))))
}

// handleQuote prices a duration without creating an order, optionally
// with an individual hourly rate.
// Usage: /quote <listing_id> <hours> [rate]
func (b *Bot) handleQuote(ctx context.Context, chatID int64, args []string) {
	if len(args) < 2 || len(args) > 3 {
		b.sendError(chatID, "Использование: /quote <id аккаунта> <часы> [ставка/час]")
		return
	}

	hours, err := ParseHours(args[1])
	if err != nil {
		b.sendError(chatID, "Некорректная длительность: "+args[1])
		return
	}

	var customRate *float64
	if len(args) == 3 {
		rate, err := strconv.ParseFloat(strings.ReplaceAll(args[2], ",", "."), 64)
		if err != nil || rate <= 0 {
			b.sendError(chatID, "Некорректная ставка: "+args[2])
			return
		}
		customRate = &rate
	}

	table, err := b.storage.GetPriceTable(ctx, args[0])
	if err != nil {
		b.sendError(chatID, "Аккаунт не найден: "+args[0])
		return
	}

	price := pricing.ResolvePrice(table, hours, customRate)

	text := fmt.Sprintf("🧮 %s ч. — %s", formatHours(hours), currency.Format(price))
	if customRate != nil {
		text += fmt.Sprintf(" (ставка %s/час)", currency.Format(*customRate))
	} else {
		savings := pricing.ComputeSavings(table, hours)
		if savings.DiscountPercent != 0 {
			text += fmt.Sprintf("\nСкидка %d%%, выгода %s",
				savings.DiscountPercent, currency.Format(savings.Savings))
		}
	}

	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

// handleListings shows the active listings with their ids for use in
// /setprices and /quote.
func (b *Bot) handleListings(ctx context.Context, chatID int64) {
	listings, err := b.storage.GetActiveListings(ctx)
	if err != nil {
		b.logger.Error("Failed to get listings", zap.Error(err))
		b.sendError(chatID, "Не удалось загрузить аккаунты")
		return
	}

	if len(listings) == 0 {
		b.sendMessage(tgbotapi.NewMessage(chatID, "Активных аккаунтов нет."))
		return
	}

	var sb strings.Builder
	sb.WriteString("Активные аккаунты:\n\n")
	for _, listing := range listings {
		sb.WriteString(fmt.Sprintf("• %s\n  `%s`\n", listing.Title, listing.ID))
	}

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ParseMode = "Markdown"
	b.sendMessage(msg)
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	stats, err := b.storage.GetOrderStatistics(ctx)
	if err != nil {
		b.logger.Error("Failed to get statistics", zap.Error(err))
		b.sendError(chatID, "Не удалось получить статистику")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Статистика заказов\n\n")
	sb.WriteString(fmt.Sprintf("Сегодня: %d (%s)\n", stats.TodayOrders, currency.Format(stats.TodayRevenue)))
	sb.WriteString(fmt.Sprintf("За неделю: %d (%s)\n", stats.WeekOrders, currency.Format(stats.WeekRevenue)))
	sb.WriteString(fmt.Sprintf("За месяц: %d (%s)\n", stats.MonthOrders, currency.Format(stats.MonthRevenue)))
	sb.WriteString(fmt.Sprintf("Всего: %d (%s)\n", stats.TotalOrders, currency.Format(stats.TotalRevenue)))

	if len(stats.StatusCounts) > 0 {
		sb.WriteString("\nПо статусам:\n")
		for _, status := range []string{
			storage.OrderStatusPaid,
			storage.OrderStatusActive,
			storage.OrderStatusCompleted,
			storage.OrderStatusCancelled,
		} {
			if count, ok := stats.StatusCounts[status]; ok {
				sb.WriteString(fmt.Sprintf("• %s: %d\n", status, count))
			}
		}
	}

	b.sendMessage(tgbotapi.NewMessage(chatID, sb.String()))
}

// handleExport sends an Excel report: one order when an id is given,
// otherwise all orders.
func (b *Bot) handleExport(ctx context.Context, chatID int64, args []string) {
	var path string
	var err error

	if len(args) > 0 {
		orderID, parseErr := strconv.ParseInt(args[0], 10, 64)
		if parseErr != nil {
			b.sendError(chatID, "Некорректный id заказа: "+args[0])
			return
		}

		order, getErr := b.storage.GetOrderByID(ctx, orderID)
		if getErr != nil {
			b.sendError(chatID, "Заказ не найден: "+args[0])
			return
		}
		path, err = b.storage.ExportOrderToExcel(ctx, *order)
	} else {
		filename := fmt.Sprintf("orders_%s", time.Now().Format("20060102_1504"))
		path, err = b.storage.ExportAllOrdersToExcel(ctx, filename)
	}

	if err != nil {
		b.logger.Error("Failed to export orders", zap.Error(err))
		b.sendError(chatID, "Не удалось сформировать отчет")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	if _, err := b.bot.Send(doc); err != nil {
		b.logger.Error("Failed to send report",
			zap.String("path", path),
			zap.Error(err))
		b.sendError(chatID, "Не удалось отправить отчет")
	}
}

// handleSetStatus changes an order's status from the command line.
// Usage: /status <order_id> <paid|active|completed|cancelled>
func (b *Bot) handleSetStatus(ctx context.Context, chatID int64, args []string) {
	if len(args) != 2 {
		b.sendError(chatID, "Использование: /status <id заказа> <paid|active|completed|cancelled>")
		return
	}

	orderID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.sendError(chatID, "Некорректный id заказа: "+args[0])
		return
	}

	b.setOrderStatus(ctx, chatID, orderID, args[1])
}

// handleStatusCallback reacts to the status buttons under admin
// notifications. Data format: status:<order_id>:<status>.
func (b *Bot) handleStatusCallback(ctx context.Context, chatID int64, data string) {
	if !b.isAdmin(chatID) {
		b.logger.Warn("Status callback from non-admin",
			zap.Int64("chat_id", chatID),
			zap.String("data", data))
		return
	}

	parts := strings.Split(data, ":")
	if len(parts) != 3 {
		b.logger.Warn("Malformed status callback", zap.String("data", data))
		return
	}

	orderID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		b.logger.Warn("Malformed order id in callback", zap.String("data", data))
		return
	}

	b.setOrderStatus(ctx, chatID, orderID, parts[2])
}

func (b *Bot) setOrderStatus(ctx context.Context, chatID, orderID int64, status string) {
	switch status {
	case storage.OrderStatusPaid, storage.OrderStatusActive,
		storage.OrderStatusCompleted, storage.OrderStatusCancelled:
	default:
		b.sendError(chatID, "Неизвестный статус: "+status)
		return
	}

	if err := b.storage.UpdateOrderStatus(ctx, orderID, status); err != nil {
		b.logger.Error("Failed to update order status",
			zap.Int64("order_id", orderID),
			zap.String("status", status),
			zap.Error(err))
		b.sendError(chatID, "Не удалось обновить статус заказа")
		return
	}

	b.logger.Info("Order status updated",
		zap.Int64("admin_id", chatID),
		zap.Int64("order_id", orderID),
		zap.String("status", status))

	b.sendMessage(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"✅ Заказ #%d переведен в статус %q", orderID, status)))
}
