package fullcontrol

// printerState holds feed rates and the firmware command table. A feed rate
// is only written when it changed or when a move category has never had one.
type printerState struct {
	printSpeed   float64
	travelSpeed  float64
	speedChanged bool

	printFeedSent  bool
	travelFeedSent bool

	commands map[string]string
}

func newPrinterState(s Settings) *printerState {
	p := &printerState{
		printSpeed:  s.PrintSpeed,
		travelSpeed: s.TravelSpeed,
		commands:    map[string]string{},
	}
	for k, v := range s.PrinterCommands {
		p.commands[k] = v
	}
	return p
}

func (p *printerState) update(pr Printer) {
	if pr.PrintSpeed != nil {
		p.printSpeed = *pr.PrintSpeed
		p.speedChanged = true
	}
	if pr.TravelSpeed != nil {
		p.travelSpeed = *pr.TravelSpeed
		p.speedChanged = true
	}
	for k, v := range pr.NewCommand {
		if v == "" {
			delete(p.commands, k)
		} else {
			p.commands[k] = v
		}
	}
}

func (p *printerState) setSpeed(extruding bool, speed float64) {
	if extruding {
		p.printSpeed = speed
	} else {
		p.travelSpeed = speed
	}
	p.speedChanged = true
}

// feedToken returns the F word for the next move, or "" if the machine
// already has the right feed rate.
func (p *printerState) feedToken(extruding bool) string {
	speed := p.travelSpeed
	sent := &p.travelFeedSent
	if extruding {
		speed = p.printSpeed
		sent = &p.printFeedSent
	}
	if !p.speedChanged && *sent {
		return ""
	}
	p.speedChanged = false
	*sent = true
	return "F" + FormatFeedrate(speed)
}

func (p *printerState) command(id string) (string, bool) {
	cmd, ok := p.commands[id]
	return cmd, ok && cmd != ""
}
