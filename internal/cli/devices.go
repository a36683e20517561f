package cli

import (
	"context"
	"fmt"
)

type DevicesCmd struct{}

func (c *DevicesCmd) Run(ctx *Context) error {
	if err := requireAuth(ctx); err != nil {
		return err
	}

	devices, err := ctx.Client.Devices(context.Background())
	if err != nil {
		return fmt.Errorf("loading devices: %w", err)
	}
	if len(devices) == 0 {
		fmt.Println("No devices registered to this account.")
		return nil
	}

	for _, dev := range devices {
		status := "offline"
		if dev.Online {
			status = "online"
		}
		marker := " "
		if dev.DeviceID == ctx.Config.DeviceID {
			marker = "*"
		}
		name := dev.Name
		if name == "" {
			name = "-"
		}
		fmt.Printf("%s %-16s %-20s %s\n", marker, dev.DeviceID, name, status)
	}
	fmt.Println("\n* currently selected (change device_id in the config file)")
	return nil
}
