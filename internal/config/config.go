package config

import (
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/srnotes/internal/cloze"
	"github.com/at-ishikawa/srnotes/internal/note"
	"github.com/at-ishikawa/srnotes/internal/parser"
	"github.com/at-ishikawa/srnotes/internal/srs"
	"github.com/at-ishikawa/srnotes/internal/vault"
)

type Config struct {
	Vault      VaultConfig      `mapstructure:"vault"`
	Flashcards FlashcardsConfig `mapstructure:"flashcards"`
	Notes      NotesConfig      `mapstructure:"notes"`
	Algorithm  AlgorithmConfig  `mapstructure:"algorithm"`
}

type VaultConfig struct {
	Directory string `mapstructure:"directory" validate:"required,directory"`
}

type FlashcardsConfig struct {
	Tags                         []string `mapstructure:"tags" validate:"min=1,dive,startswith=#"`
	ConvertFoldersToDecks        bool     `mapstructure:"convert_folders_to_decks"`
	SingleLineSeparator          string   `mapstructure:"single_line_separator" validate:"required"`
	SingleLineReversedSeparator  string   `mapstructure:"single_line_reversed_separator" validate:"required"`
	MultilineSeparator           string   `mapstructure:"multiline_separator" validate:"required"`
	MultilineReversedSeparator   string   `mapstructure:"multiline_reversed_separator" validate:"required"`
	MultilineEndMarker           string   `mapstructure:"multiline_end_marker"`
	ConvertHighlightsToClozes    bool     `mapstructure:"convert_highlights_to_clozes"`
	ConvertBoldTextToClozes      bool     `mapstructure:"convert_bold_text_to_clozes"`
	ConvertCurlyBracketsToClozes bool     `mapstructure:"convert_curly_brackets_to_clozes"`
	CardCommentOnSameLine        bool     `mapstructure:"card_comment_on_same_line"`
	RandomOrder                  bool     `mapstructure:"random_order"`
	// Seed makes the random order reproducible. Zero seeds from the clock.
	Seed int64 `mapstructure:"seed"`
}

type NotesConfig struct {
	ReviewTags []string `mapstructure:"review_tags" validate:"dive,startswith=#"`
}

type AlgorithmConfig struct {
	Name                 string                `mapstructure:"name" validate:"oneof=osr custom"`
	BaseEase             int                   `mapstructure:"base_ease" validate:"min=130"`
	LapsesIntervalChange float64               `mapstructure:"lapses_interval_change" validate:"gt=0,lte=1"`
	EasyBonus            float64               `mapstructure:"easy_bonus" validate:"gte=1"`
	MaximumInterval      int                   `mapstructure:"maximum_interval" validate:"min=1"`
	MaxLinkFactor        float64               `mapstructure:"max_link_factor" validate:"gte=0,lte=1"`
	LoadBalance          bool                  `mapstructure:"load_balance"`
	CustomIntervals      CustomIntervalsConfig `mapstructure:"custom_intervals"`
}

type CustomIntervalsConfig struct {
	Easy int `mapstructure:"easy" validate:"min=0"`
	Good int `mapstructure:"good" validate:"min=0"`
	Hard int `mapstructure:"hard" validate:"min=0"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/srnotes")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("vault.directory", ".")
	v.SetDefault("flashcards.tags", []string{"#flashcards"})
	v.SetDefault("flashcards.single_line_separator", "::")
	v.SetDefault("flashcards.single_line_reversed_separator", ":::")
	v.SetDefault("flashcards.multiline_separator", "?")
	v.SetDefault("flashcards.multiline_reversed_separator", "??")
	v.SetDefault("flashcards.convert_highlights_to_clozes", true)
	v.SetDefault("flashcards.random_order", true)
	v.SetDefault("notes.review_tags", []string{"#review"})
	v.SetDefault("algorithm.name", vault.AlgorithmOSR)
	v.SetDefault("algorithm.base_ease", 250)
	v.SetDefault("algorithm.lapses_interval_change", 0.5)
	v.SetDefault("algorithm.easy_bonus", 1.3)
	v.SetDefault("algorithm.maximum_interval", 36525)
	v.SetDefault("algorithm.max_link_factor", 1.0)
	v.SetDefault("algorithm.load_balance", true)
	v.SetDefault("algorithm.custom_intervals.easy", 7)
	v.SetDefault("algorithm.custom_intervals.good", 3)
	v.SetDefault("algorithm.custom_intervals.hard", 1)

	if err := v.BindEnv("vault.directory", "SRNOTES_VAULT_DIRECTORY"); err != nil {
		return nil, fmt.Errorf("failed to bind SRNOTES_VAULT_DIRECTORY environment variable: %w", err)
	}
	if err := v.BindEnv("flashcards.seed", "SRNOTES_SEED"); err != nil {
		return nil, fmt.Errorf("failed to bind SRNOTES_SEED environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

func (cfg *Config) ParserOptions() parser.Options {
	f := cfg.Flashcards
	return parser.Options{
		SingleLineCardSeparator:         f.SingleLineSeparator,
		SingleLineReversedCardSeparator: f.SingleLineReversedSeparator,
		MultilineCardSeparator:          f.MultilineSeparator,
		MultilineReversedCardSeparator:  f.MultilineReversedSeparator,
		MultilineCardEndMarker:          f.MultilineEndMarker,
		Cloze: cloze.Syntax{
			Highlights:    f.ConvertHighlightsToClozes,
			Bold:          f.ConvertBoldTextToClozes,
			CurlyBrackets: f.ConvertCurlyBracketsToClozes,
		},
	}
}

func (cfg *Config) SRSSettings() srs.Settings {
	a := cfg.Algorithm
	return srs.Settings{
		BaseEase:             a.BaseEase,
		LapsesIntervalChange: a.LapsesIntervalChange,
		EasyBonus:            a.EasyBonus,
		MaximumInterval:      a.MaximumInterval,
		MaxLinkFactor:        a.MaxLinkFactor,
		LoadBalance:          a.LoadBalance,
		FuzzBands:            srs.DefaultFuzzBands,
	}
}

func (cfg *Config) NoteSettings() note.Settings {
	return note.Settings{
		Parser:                cfg.ParserOptions(),
		FlashcardTags:         cfg.Flashcards.Tags,
		ConvertFoldersToDecks: cfg.Flashcards.ConvertFoldersToDecks,
		BaseEase:              cfg.Algorithm.BaseEase,
		CommentOnSameLine:     cfg.Flashcards.CardCommentOnSameLine,
	}
}

func (cfg *Config) VaultOptions(now func() time.Time) vault.Options {
	return vault.Options{
		Dir:       cfg.Vault.Directory,
		Note:      cfg.NoteSettings(),
		SRS:       cfg.SRSSettings(),
		Algorithm: cfg.Algorithm.Name,
		CustomIntervals: srs.CustomIntervals{
			Easy: cfg.Algorithm.CustomIntervals.Easy,
			Good: cfg.Algorithm.CustomIntervals.Good,
			Hard: cfg.Algorithm.CustomIntervals.Hard,
		},
		ReviewTags: cfg.Notes.ReviewTags,
		Now:        now,
	}
}
