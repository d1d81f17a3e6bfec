/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/store"
	"gopkg.in/yaml.v3"
)

type Model struct {
	cursor    int
	fields    []string
	config    model.Config
	textInput textinput.Model
	editMode  bool
}

func newModel(config model.Config) tea.Model {
	return &Model{
		cursor:    0,
		fields:    generateFieldList(),
		config:    config,
		textInput: textinput.New(),
		editMode:  false,
	}
}

func generateFieldList() []string {
	return []string{
		"DataDir", "UserID",
		"Database.Enable", "Database.DSN",
		"Server.Addr", "Server.AllowOrigins",
		"Sync.Enable", "Sync.Platform", "Sync.Bucket", "Sync.AWSProfile", "Sync.AWSRegion",
		"Save & Exit",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) forceRedraw() tea.Msg {
	return tea.WindowSizeMsg{}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editMode {
			switch msg.String() {
			case "enter":
				m.updateConfig()
				m.editMode = false
				m.textInput.Blur()
				return m, tea.Batch(tea.ClearScreen, m.forceRedraw)
			case "esc":
				m.editMode = false
				m.textInput.Blur()
			default:
				m.textInput, _ = m.textInput.Update(msg)
			}
			return m, nil
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.fields)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor == len(m.fields)-1 {
				if err := store.SaveConfig(m.config); err != nil {
					log.Printf("⚠️ Failed to save config file: %v", err)
				}
				return m, tea.Quit
			}
			m.editMode = true
			m.textInput.SetValue(m.getFieldValue(m.fields[m.cursor]))
			m.textInput.Focus()
		}
	}

	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString("\033[H\033[2J")
	s.WriteString("📄 Configure tasksheet\n\n")

	for i, field := range generateFieldList() {
		cursor := "  "
		if m.cursor == i {
			cursor = "👉"
		}

		value := m.getFieldValue(field)
		s.WriteString(fmt.Sprintf("%s %s: %s\n", cursor, field, value))
	}

	if m.editMode {
		s.WriteString("\n✏️  Editing: " + generateFieldList()[m.cursor] + "\n")
		s.WriteString(m.textInput.View() + "\n")
		s.WriteString("(Enter to save, ESC to cancel)\n")
	} else {
		s.WriteString("\n⬆️⬇️ to move, Enter to edit, Q to quit\n")
	}

	return s.String()
}

func (m Model) getFieldValue(field string) string {
	switch field {
	case "DataDir":
		return m.config.DataDir
	case "UserID":
		return m.config.UserID
	case "Database.Enable":
		return strconv.FormatBool(m.config.Database.Enable)
	case "Database.DSN":
		return m.config.Database.DSN
	case "Server.Addr":
		return m.config.Server.Addr
	case "Server.AllowOrigins":
		return strings.Join(m.config.Server.AllowOrigins, ",")
	case "Sync.Enable":
		return strconv.FormatBool(m.config.Sync.Enable)
	case "Sync.Platform":
		return m.config.Sync.Platform
	case "Sync.Bucket":
		return m.config.Sync.Bucket
	case "Sync.AWSProfile":
		return m.config.Sync.AWSProfile
	case "Sync.AWSRegion":
		return m.config.Sync.AWSRegion
	default:
		return "UNKNOWN"
	}
}

func (m *Model) updateConfig() {
	newValue := m.textInput.Value()

	switch m.fields[m.cursor] {
	case "DataDir":
		m.config.DataDir = newValue
	case "UserID":
		m.config.UserID = newValue
	case "Database.Enable":
		if newBool, err := strconv.ParseBool(newValue); err == nil {
			m.config.Database.Enable = newBool
		}
	case "Database.DSN":
		m.config.Database.DSN = newValue
	case "Server.Addr":
		m.config.Server.Addr = newValue
	case "Server.AllowOrigins":
		origins := []string{}
		for _, origin := range strings.Split(newValue, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		m.config.Server.AllowOrigins = origins
	case "Sync.Enable":
		if newBool, err := strconv.ParseBool(newValue); err == nil {
			m.config.Sync.Enable = newBool
		}
	case "Sync.Platform":
		m.config.Sync.Platform = newValue
	case "Sync.Bucket":
		m.config.Sync.Bucket = newValue
	case "Sync.AWSProfile":
		m.config.Sync.AWSProfile = newValue
	case "Sync.AWSRegion":
		m.config.Sync.AWSRegion = newValue
	}

	if err := store.SaveConfig(m.config); err != nil {
		log.Printf("⚠️ Failed to save config file: %v", err)
	}
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure config.yaml interactively",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := store.GetConfigPath()
		if err != nil {
			log.Printf("failed to get config path: %v", err)
		}

		fmt.Println(configPath)

		configByte, err := os.ReadFile(configPath)
		if err != nil {
			log.Printf("❌ Failed to read config file: %v", err)
			os.Exit(1)
		}

		var config model.Config

		if err = yaml.Unmarshal(configByte, &config); err != nil {
			log.Printf("failed to parse YAML: %v", err)
		}

		if _, err := tea.NewProgram(newModel(config)).Run(); err != nil {
			log.Fatalf("❌ Error running TUI: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
