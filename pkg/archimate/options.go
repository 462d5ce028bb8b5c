package archimate

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Default option values.
const (
	DefaultTitleLength       = 96
	DefaultDescriptionLength = 8192
	DefaultNamespace         = "archimate:"
	DefaultFolderType        = "SpecIF:Heading"
	DefaultDiagramsType      = "SpecIF:Diagrams"
	DefaultGlossaryType      = "SpecIF:Glossary"
	DefaultRootType          = "SpecIF:TOGAF"
	DefaultDiagramsFolder    = "Model-Diagrams"
	DefaultGlossaryFolder    = "Model-Elements (Glossary)"
	DefaultActorFolder       = "Actors"
	DefaultStateFolder       = "States"
	DefaultEventFolder       = "Events"
	DefaultCollectionFolder  = "Collections and Groups"
)

// Options configures a conversion. The zero value is usable after
// [Options.SetDefaults]; [Convert] applies defaults itself.
type Options struct {
	// FileName is the name of the source file; its base name without
	// extension is the fallback model title.
	FileName string
	// FileDate stamps changedAt/createdAt. Defaults to the current time (RFC 3339).
	FileDate string
	// Title overrides the fallback title used when the model has no name.
	Title string

	TitleLength       int
	DescriptionLength int

	// Namespace prefixes native ArchiMate type names stored as dcterms:type.
	Namespace string

	FolderType       string
	DiagramsType     string
	GlossaryType     string
	RootType         string
	DiagramsFolder   string
	GlossaryFolder   string
	ActorFolder      string
	StateFolder      string
	EventFolder      string
	CollectionFolder string

	// HiddenDiagramProperties lists property-definition titles that hide a
	// view when the view carries them with the value "true".
	HiddenDiagramProperties []string

	// VisibleOnly keeps only elements and relationships some diagram shows.
	// Relationships of implicit classes (contains) are kept regardless.
	VisibleOnly bool

	// StrictSchema drops statements whose endpoint classes are not listed by
	// their statement class. When false, the allow-lists are extended instead.
	StrictSchema bool

	// DisambiguatePropertyTitles suffixes a property class title with its
	// source definition id when the title is already taken.
	DisambiguatePropertyTitles bool

	// Glossary adds a folder listing element resources by class.
	Glossary bool

	// ElementTypes and RelationshipTypes override or extend the built-in
	// classification tables (source type -> class id). Access relationships
	// may be overridden per access type with keys like "Access:Read".
	ElementTypes      map[string]string
	RelationshipTypes map[string]string

	// NativeProperties lists property-definition ids or titles that are
	// read into resource attributes instead of generic properties.
	NativeProperties NativeProperties

	// Logger receives warnings for dropped items. Nil discards output.
	Logger *log.Logger `json:"-"`
}

// NativeProperties names the property definitions intercepted as native
// resource attributes. Each entry matches a definition's identifier or its
// title, case-insensitively.
type NativeProperties struct {
	CreatedBy []string
	CreatedAt []string
	ChangedBy []string
	ChangedAt []string
}

// DefaultNativeProperties returns the definitions recognized when none are configured.
func DefaultNativeProperties() NativeProperties {
	return NativeProperties{
		CreatedBy: []string{"dcterms:creator", "Author", "Created By"},
		CreatedAt: []string{"dcterms:created", "Created", "Creation Date"},
		ChangedBy: []string{"SpecIF:changedBy", "Last Editor", "Changed By"},
		ChangedAt: []string{"dcterms:modified", "SpecIF:changedAt", "Last Change", "Modified"},
	}
}

// IsZero reports whether no native property keys are configured.
func (n NativeProperties) IsZero() bool {
	return len(n.CreatedBy) == 0 && len(n.CreatedAt) == 0 && len(n.ChangedBy) == 0 && len(n.ChangedAt) == 0
}

// SetDefaults fills every unset option with its default value.
func (o *Options) SetDefaults() {
	if o.FileDate == "" {
		o.FileDate = time.Now().UTC().Format(time.RFC3339)
	}
	if o.Title == "" && o.FileName != "" {
		base := filepath.Base(o.FileName)
		o.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if o.TitleLength <= 0 {
		o.TitleLength = DefaultTitleLength
	}
	if o.DescriptionLength <= 0 {
		o.DescriptionLength = DefaultDescriptionLength
	}
	setString(&o.Namespace, DefaultNamespace)
	setString(&o.FolderType, DefaultFolderType)
	setString(&o.DiagramsType, DefaultDiagramsType)
	setString(&o.GlossaryType, DefaultGlossaryType)
	setString(&o.RootType, DefaultRootType)
	setString(&o.DiagramsFolder, DefaultDiagramsFolder)
	setString(&o.GlossaryFolder, DefaultGlossaryFolder)
	setString(&o.ActorFolder, DefaultActorFolder)
	setString(&o.StateFolder, DefaultStateFolder)
	setString(&o.EventFolder, DefaultEventFolder)
	setString(&o.CollectionFolder, DefaultCollectionFolder)
	if o.NativeProperties.IsZero() {
		o.NativeProperties = DefaultNativeProperties()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
