package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"github.com/maherelattar207-beep/mxd/internal/monitor"
	"github.com/maherelattar207-beep/mxd/internal/optimizer"
	"github.com/maherelattar207-beep/mxd/internal/stability"
	"github.com/maherelattar207-beep/mxd/internal/tier"
)

func runCLI(app *App) {
	green := color.New(color.FgHiGreen, color.Bold)
	cyan := color.New(color.FgHiCyan)
	yellow := color.New(color.FgHiYellow)
	red := color.New(color.FgHiRed)

	green.Println("\n  ███╗   ███╗██╗  ██╗██████╗     ██████╗ ██████╗  ██████╗ ")
	green.Println("  ████╗ ████║╚██╗██╔╝██╔══██╗    ██╔══██╗██╔══██╗██╔═══██╗")
	green.Println("  ██╔████╔██║ ╚███╔╝ ██║  ██║    ██████╔╝██████╔╝██║   ██║")
	green.Println("  ██║╚██╔╝██║ ██╔██╗ ██║  ██║    ██╔═══╝ ██╔══██╗██║   ██║")
	green.Println("  ██║ ╚═╝ ██║██╔╝ ██╗██████╔╝    ██║     ██║  ██║╚██████╔╝")
	green.Println("  ╚═╝     ╚═╝╚═╝  ╚═╝╚═════╝     ╚═╝     ╚═╝  ╚═╝ ╚═════╝ ")
	fmt.Println()
	cyan.Printf("  Game & Hardware Optimization Suite v%s\n", Version)
	fmt.Println("  ─────────────────────────────────────────────")
	fmt.Println()

	for {
		prompt := promptui.Select{
			Label: "What would you like to do?",
			Items: []string{
				"🖥️  System Info",
				"🎮 Optimize Game",
				"↩️  Restore Game Config",
				"📈 Live Monitor",
				"🏷️  Performance Tier",
				"🔄 Refresh Hardware Snapshot",
				"🩺 Stability Watch",
				"❌ Exit",
			},
			Size: 8,
		}

		i, _, err := prompt.Run()
		if err != nil {
			break
		}

		fmt.Println()

		switch i {
		case 0:
			cliSystemInfo(app, cyan, yellow)
		case 1:
			cliOptimize(app, green, yellow, red)
		case 2:
			cliRestore(app, green, yellow, red)
		case 3:
			cliLiveMonitor(app, cyan, yellow)
		case 4:
			cliTier(app, green, yellow)
		case 5:
			app.collector.Refresh()
			app.collector.Capture()
			green.Println("  ✓ Hardware snapshot refreshed")
		case 6:
			cliStability(app, yellow, red)
		case 7:
			green.Println("  Thanks for using MXD Pro! 🔥")
			os.Exit(0)
		}
		fmt.Println()
	}
}

func cliSystemInfo(app *App, cyan, yellow *color.Color) {
	snap := app.collector.Capture()
	t := app.tiers.Current(snap)

	cyan.Println("  ═══ System Information ═══")
	fmt.Printf("  CPU:         %s (%s, %dC/%dT)\n",
		snap.CPU.Name, snap.CPU.Vendor, snap.CPU.PhysicalCores, snap.CPU.LogicalThreads)
	fmt.Printf("  RAM:         %.1f GB total, %.1f GB available\n",
		float64(snap.Memory.TotalMB)/1024,
		float64(snap.Memory.AvailableMB)/1024)

	for i, gpu := range snap.GPUs {
		label := "GPU"
		if len(snap.GPUs) > 1 {
			label = fmt.Sprintf("GPU %d", i)
		}
		fmt.Printf("  %s:         %s (%s, %d MB VRAM, driver %s)\n",
			label, gpu.Name, gpu.Vendor, gpu.VRAMMB, gpu.DriverVersion)
		fmt.Printf("               DLSS=%v FSR=%v XeSS=%v RT=%v 6K=%v\n",
			gpu.Capabilities.SupportsDLSS,
			gpu.Capabilities.SupportsFSR,
			gpu.Capabilities.SupportsXeSS,
			gpu.Capabilities.SupportsRayTracing,
			gpu.Supports6K)
	}

	yellow.Printf("  Tier:        %s\n", t)

	caps := app.collector.Platform()
	fmt.Printf("  Probes:      powershell=%v wmic=%v nvidia-smi=%v registry=%v\n",
		caps.HasPowerShell, caps.HasWMIC, caps.HasNvidiaSMI, caps.HasRegistry)
}

func cliOptimize(app *App, green, yellow, red *color.Color) {
	installed := app.profiles.Installed()
	if len(installed) == 0 {
		yellow.Println("  No game profiles available.")
		return
	}

	items := make([]string, len(installed))
	for i, p := range installed {
		items[i] = fmt.Sprintf("%s (%s @ %d fps → %s)", p.Name, p.TargetRes, p.TargetFPS, p.ConfigFilePath)
	}

	prompt := promptui.Select{Label: "Select Game", Items: items, Size: 6}
	i, _, err := prompt.Run()
	if err != nil {
		return
	}
	profile := installed[i]

	snap := app.collector.Capture()
	t := app.tiers.Current(snap)
	decision := optimizer.Optimize(&profile, snap, t)

	fmt.Println()
	green.Printf("  Recommended settings for %s:\n", profile.Name)
	fmt.Printf("    Upscaling:   %s (%s)\n", decision.Upscaling, decision.Preset)
	fmt.Printf("    Ray Tracing: %v\n", decision.RayTracing)
	fmt.Printf("    Res. Scale:  %.0f%%\n", decision.ResolutionScale*100)

	override := promptui.Select{
		Label: "Quality preset",
		Items: []string{
			"Keep recommended",
			string(optimizer.PresetQuality),
			string(optimizer.PresetBalanced),
			string(optimizer.PresetPerformance),
			string(optimizer.PresetUltraPerformance),
		},
		Size: 5,
	}
	oi, choice, err := override.Run()
	if err != nil {
		return
	}
	if oi > 0 {
		decision = optimizer.OverridePreset(decision, optimizer.QualityPreset(choice))
	}

	confirm := promptui.Prompt{
		Label:     fmt.Sprintf("Write settings to %s", profile.ConfigFilePath),
		IsConfirm: true,
	}
	if _, err := confirm.Run(); err != nil {
		return
	}

	if err := optimizer.Apply(&profile, decision, app.writer); err != nil {
		red.Printf("  Error: %v\n", err)
		return
	}
	green.Printf("  ✓ %s optimized! Backup kept at %s%s\n",
		profile.Name, profile.ConfigFilePath, ".bak")
}

func cliRestore(app *App, green, yellow, red *color.Color) {
	all := app.profiles.All()
	items := make([]string, len(all))
	for i, p := range all {
		items[i] = fmt.Sprintf("%s (%s)", p.Name, p.ConfigFilePath)
	}

	prompt := promptui.Select{Label: "Restore config for", Items: items, Size: 6}
	i, _, err := prompt.Run()
	if err != nil {
		return
	}

	yellow.Println("  Restoring config backup...")
	if err := app.writer.Restore(all[i].ConfigFilePath); err != nil {
		red.Printf("  Error: %v\n", err)
		return
	}
	green.Println("  ✓ Config restored from backup")
}

func cliLiveMonitor(app *App, cyan, yellow *color.Color) {
	const samples = 5

	yellow.Printf("  Sampling %d readings (Ctrl+C to stop early)...\n\n", samples)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	poller := monitor.NewPoller(app.collector, monitor.DefaultInterval, app.log)
	out := make(chan monitor.Sample, 1)
	go poller.Run(ctx, out)

	cyan.Println("  TIME      CPU%    RAM%    GPU%    VRAM MB    TEMP °C")
	count := 0
	for sample := range out {
		fmt.Printf("  %s  %5.1f   %5.1f   %5.1f   %5d/%d   %5.1f\n",
			sample.Timestamp.Format("15:04:05"),
			sample.CPUUsage, sample.RAMUsage,
			sample.GPU.UtilizationPct,
			sample.GPU.VRAMUsedMB, sample.GPU.VRAMTotalMB,
			sample.GPU.TemperatureC)
		count++
		if count >= samples {
			stop()
		}
	}
}

func cliTier(app *App, green, yellow *color.Color) {
	snap := app.collector.Capture()
	current := app.tiers.Current(snap)
	yellow.Printf("  Current tier: %s\n\n", current)

	prompt := promptui.Select{
		Label: "Performance Tier",
		Items: []string{
			"Keep current",
			"Override → Low",
			"Override → Normal",
			"Override → High",
			"Reclassify from hardware",
		},
		Size: 5,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return
	}

	switch i {
	case 1:
		app.tiers.Override(tier.Low)
		green.Println("  ✓ Tier set to Low")
	case 2:
		app.tiers.Override(tier.Normal)
		green.Println("  ✓ Tier set to Normal")
	case 3:
		app.tiers.Override(tier.High)
		green.Println("  ✓ Tier set to High")
	case 4:
		app.collector.Refresh()
		t := app.tiers.Reclassify(app.collector.Capture())
		green.Printf("  ✓ Reclassified: %s\n", t)
	}
}

func cliStability(app *App, yellow, red *color.Color) {
	const watchFor = 30 * time.Second

	yellow.Printf("  Watching for instability for %s (Ctrl+C to stop)...\n", watchFor)

	ctx, cancel := context.WithTimeout(context.Background(), watchFor)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	mon := stability.NewMonitor(5*time.Second, rng.Float64, app.log)
	events := make(chan stability.Event, 4)
	go mon.Run(ctx, events)

	alerts := 0
	for ev := range events {
		red.Printf("  ⚠ [%s] %s\n", ev.Severity, ev.Message)
		alerts++
	}
	if alerts == 0 {
		yellow.Println("  No instability detected.")
	}
}
