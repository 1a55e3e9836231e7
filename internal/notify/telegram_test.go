package notify

import "testing"

func TestCommandReply(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		interval int
		want     string
		handled  bool
	}{
		{
			"start hourly",
			"start",
			60,
			"Crypto scalping bot active! Signals are sent every hour.",
			true,
		},
		{
			"start every few hours",
			"Start",
			240,
			"Crypto scalping bot active! Signals are sent every 4 hours.",
			true,
		},
		{
			"start every few minutes",
			"start",
			15,
			"Crypto scalping bot active! Signals are sent every 15 minutes.",
			true,
		},
		{
			"unknown command",
			"help",
			60,
			"",
			false,
		},
	}

	for _, test := range tests {
		reply, handled := CommandReply(test.command, test.interval)
		if handled != test.handled {
			t.Errorf("%s: expected handled %v, got %v", test.name, test.handled, handled)
		}
		if reply != test.want {
			t.Errorf("%s: expected %q, got %q", test.name, test.want, reply)
		}
	}
}
