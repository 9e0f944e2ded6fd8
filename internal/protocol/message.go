package protocol

import "fmt"

// Server message texts. Clients match these literally, so changing any
// of them is a protocol break.
const (
	// GreetingFormat is sent once per connection, immediately on accept.
	// The player count includes the newly connected player.
	GreetingFormat = "Welcome to Minesweeper. Board: %d columns by %d rows. Players: %d including you. Type 'help' for help."

	// HelpMessage answers an explicit help request and doubles as the
	// error reply for anything the parser rejects.
	HelpMessage = "Commands: look | dig X Y | flag X Y | deflag X Y | help | bye"

	// BoomMessage answers a dig that hit a bomb.
	BoomMessage = "BOOM"
)

// Greeting renders the connect greeting for a board of the given size
// and the given post-connect player count.
func Greeting(width, height, players int) string {
	return fmt.Sprintf(GreetingFormat, width, height, players)
}
