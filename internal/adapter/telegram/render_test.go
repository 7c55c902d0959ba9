package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-triage-telegram-bot/internal/domain"
)

func TestParseAddClient(t *testing.T) {
	name, phone, company, comments, ok := parseAddClient("/add_client\nJane Doe\n+15551234567\nAcme Co\nMet at expo")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "+15551234567", phone)
	assert.Equal(t, "Acme Co", company)
	assert.Equal(t, "Met at expo", comments)
}

func TestParseAddClientNoComments(t *testing.T) {
	_, _, _, comments, ok := parseAddClient("/add_client\nJane Doe\n+15551234567\nAcme Co")
	require.True(t, ok)
	assert.Equal(t, "", comments)
}

func TestParseAddClientMultilineComments(t *testing.T) {
	_, _, _, comments, ok := parseAddClient("/add_client\nJane\n+1\nAcme\nстрока 1\nстрока 2")
	require.True(t, ok)
	assert.Equal(t, "строка 1\nстрока 2", comments)
}

func TestParseAddClientTooFewLines(t *testing.T) {
	_, _, _, _, ok := parseAddClient("/add_client\nJane Doe")
	assert.False(t, ok)
}

func TestParseIDArg(t *testing.T) {
	id, ok := parseIDArg("/delete_client 7")
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	_, ok = parseIDArg("/delete_client")
	assert.False(t, ok)

	_, ok = parseIDArg("/delete_client seven")
	assert.False(t, ok)

	_, ok = parseIDArg("/delete_client 7 8")
	assert.False(t, ok)
}

func TestLeadCard(t *testing.T) {
	card := leadCard(&domain.Lead{
		Name:     "Jane Doe",
		Phone:    "+15551234567",
		Company:  "Acme Co",
		Comments: "Met at expo",
	})
	assert.Equal(t, "<b>Jane Doe</b>\n📞 +15551234567\n🏢 Acme Co\n💬 Met at expo", card)
}

func TestLeadCardEscapesHTML(t *testing.T) {
	card := leadCard(&domain.Lead{Name: "Jane <script>", Phone: "+1", Company: "A&B", Comments: ""})
	assert.Contains(t, card, "<b>Jane &lt;script&gt;</b>")
	assert.Contains(t, card, "A&amp;B")
}

func TestInterestedNotification(t *testing.T) {
	text := interestedNotification(&domain.Lead{
		ID:       42,
		Name:     "Jane Doe",
		Phone:    "+15551234567",
		Company:  "Acme Co",
		Comments: "vip",
	}, "Оператор Иван")
	assert.Equal(t,
		"👀 <b>Интересует</b> от Оператор Иван\nID клиента: <code>42</code>\n<b>Jane Doe</b>\n\n📞 +15551234567\n\n🏢 Acme Co\n\n💬 vip",
		text)
}

func TestInterestedNotificationEmptyComments(t *testing.T) {
	text := interestedNotification(&domain.Lead{ID: 1, Name: "n", Phone: "p", Company: "c"}, "op")
	assert.Contains(t, text, "💬 -")
}

func TestLeadListLine(t *testing.T) {
	line := leadListLine(domain.Lead{ID: 3, Name: "Jane", Phone: "+1", Status: domain.StatusNew})
	assert.Equal(t, "3: Jane | +1 | new", line)
}

func TestDispositionKeyboard(t *testing.T) {
	kb := dispositionKeyboard()
	require.Len(t, kb.InlineKeyboard, 4)
	var data []string
	for _, row := range kb.InlineKeyboard {
		require.Len(t, row, 1)
		require.NotNil(t, row[0].CallbackData)
		data = append(data, *row[0].CallbackData)
	}
	assert.Equal(t, []string{cbNoAnswer, cbNotInterested, cbInterested, cbComment}, data)
}

func TestOperatorDisplayName(t *testing.T) {
	assert.Equal(t, "Jane Doe", operatorDisplayName(&tgbotapi.User{FirstName: "Jane", LastName: "Doe"}))
	assert.Equal(t, "Jane", operatorDisplayName(&tgbotapi.User{FirstName: "Jane"}))
	assert.Equal(t, "jdoe", operatorDisplayName(&tgbotapi.User{UserName: "jdoe"}))
}
