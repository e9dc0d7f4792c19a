package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/infrastructure/config"
	csvimport "github.com/vsinha/prettybom/pkg/infrastructure/repositories/csv"
)

// Generated file names
const (
	GeneratedPartListFile = "part_list.csv"
	GeneratedProfileFile  = "profile.yaml"
)

// MaxGeneratedDepth keeps the propagated quantities of generated trees far from overflowing
const MaxGeneratedDepth = 10

// GeneratedColumns is the header of generated part lists
var GeneratedColumns = []string{"Pos.", "Qty.", "Part number", "Part name", "Supplier"}

// GenerateConfig holds configuration for part list generation
type GenerateConfig struct {
	Parts     int    // Total number of parts to generate
	MaxDepth  int    // Maximum depth of the part tree
	Delimiter string // Position delimiter, "-" when empty
	Prefix    string // Part number prefix of production parts, "M-2022" when empty
	Shuffle   bool   // Write rows in random order instead of generation order
	OutputDir string // Output directory for generated files
	Seed      int64  // Random seed for reproducible generation
	Verbose   bool
	Stdout    io.Writer
}

// GenerateCommand writes a synthetic CAD part list with a matching processing profile
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
	out    io.Writer
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.Delimiter == "" {
		config.Delimiter = "-"
	}
	if config.Prefix == "" {
		config.Prefix = "M-2022"
	}
	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		out:    out,
	}
}

type partKind int

const (
	kindProduction partKind = iota
	kindPurchased
	kindFastener
	kindNested
	kindJunk
)

// PartNode is a generated part and its place in the tree
type PartNode struct {
	Position string
	Level    int
	Quantity entities.Quantity
	Number   string
	Name     string
	Supplier string

	kind     partKind
	children int
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if err := cmd.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out, "🔧 Generating part list with %d parts, max depth %d\n", cmd.config.Parts, cmd.config.MaxDepth)
		fmt.Fprintf(cmd.out, "📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Fprintf(cmd.out, "🎲 Random seed: %d\n", cmd.config.Seed)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintln(cmd.out, "🌳 Generating part tree...")
	}
	nodes := cmd.GeneratePartTree()
	if cmd.config.Shuffle {
		cmd.rand.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out, "📦 Generating %s...\n", GeneratedPartListFile)
	}
	if err := cmd.writePartList(nodes); err != nil {
		return fmt.Errorf("failed to generate part list: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out, "📋 Generating %s...\n", GeneratedProfileFile)
	}
	if err := cmd.writeProfile(); err != nil {
		return fmt.Errorf("failed to generate profile: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out, "✅ Part list generated successfully in %s\n", cmd.config.OutputDir)
	}
	return nil
}

func (cmd *GenerateCommand) validateInputs() error {
	if cmd.config.Parts < 1 {
		return fmt.Errorf("parts must be at least 1, got %d", cmd.config.Parts)
	}
	if cmd.config.MaxDepth < 1 || cmd.config.MaxDepth > MaxGeneratedDepth {
		return fmt.Errorf("max depth must be between 1 and %d, got %d", MaxGeneratedDepth, cmd.config.MaxDepth)
	}
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("must specify an output directory")
	}
	return nil
}

// GeneratePartTree creates the parts level by level. Production assemblies and a few
// purchased parts get children; leftover parts are attached to random production parts.
func (cmd *GenerateCommand) GeneratePartTree() []*PartNode {
	var nodes []*PartNode
	var production []*PartNode

	add := func(node *PartNode) {
		nodes = append(nodes, node)
		if node.kind == kindProduction {
			production = append(production, node)
		}
	}

	numRoots := max(1, cmd.config.Parts/50+cmd.rand.Intn(3))
	numRoots = min(numRoots, cmd.config.Parts)

	var currentLevel []*PartNode
	for i := 0; i < numRoots; i++ {
		root := cmd.newPart(strconv.Itoa(i+1), 0, kindProduction, nil)
		root.Quantity = 1
		add(root)
		currentLevel = append(currentLevel, root)
	}

	level := 0
	for level+1 < cmd.config.MaxDepth && len(nodes) < cmd.config.Parts {
		level++
		var nextLevel []*PartNode

		for _, parent := range currentLevel {
			numChildren := 2 + cmd.rand.Intn(7)
			for child := 0; child < numChildren && len(nodes) < cmd.config.Parts; child++ {
				node := cmd.newChild(parent, level, cmd.childKind(parent))
				add(node)
				if node.kind == kindProduction || (node.kind == kindPurchased && cmd.rand.Float64() < 0.1) {
					nextLevel = append(nextLevel, node)
				}
			}
		}

		if len(nextLevel) == 0 {
			break
		}
		currentLevel = nextLevel
	}

	// leftovers become leaves below production parts that are not at the deepest level
	var parents []*PartNode
	for _, node := range production {
		if node.Level+1 < cmd.config.MaxDepth {
			parents = append(parents, node)
		}
	}
	for len(nodes) < cmd.config.Parts && len(parents) > 0 {
		parent := parents[cmd.rand.Intn(len(parents))]
		add(cmd.newChild(parent, parent.Level+1, cmd.leafKind()))
	}

	return nodes
}

func (cmd *GenerateCommand) childKind(parent *PartNode) partKind {
	if parent.kind == kindPurchased || parent.kind == kindNested {
		return kindNested
	}
	if cmd.rand.Float64() < 0.5 {
		return kindProduction
	}
	return cmd.leafKind()
}

func (cmd *GenerateCommand) leafKind() partKind {
	switch r := cmd.rand.Float64(); {
	case r < 0.55:
		return kindPurchased
	case r < 0.95:
		return kindFastener
	default:
		return kindJunk
	}
}

func (cmd *GenerateCommand) newChild(parent *PartNode, level int, kind partKind) *PartNode {
	parent.children++
	position := parent.Position + cmd.config.Delimiter + strconv.Itoa(parent.children)
	node := cmd.newPart(position, level, kind, parent)

	// higher quantities for fasteners and deeper levels
	node.Quantity = entities.Quantity(1 + cmd.rand.Intn(3))
	if kind == kindFastener || level > 2 {
		node.Quantity += entities.Quantity(cmd.rand.Intn(8))
	}
	return node
}

var (
	productionNames = []string{"Frame", "Bracket", "Plate", "Shaft", "Housing", "Cover", "Spacer", "Module"}
	purchasedNames  = []string{"Non-return valve GRLA", "Linear guide", "Proximity sensor", "Pneumatic cylinder", "Ball bearing"}
	suppliers       = []string{"FESTO", "festo", "NORELEM", "Norelem", "SMC", "smc", "SKF", "igus"}
	fastenerNames   = []string{"DIN 912 M%d x %d", "ISO 4762 M%d x %d", "DIN 933 M%d x %d", "ISO 7380 M%d x %d"}
	fastenerSizes   = []int{3, 4, 5, 6, 8, 10, 12}
)

func (cmd *GenerateCommand) newPart(position string, level int, kind partKind, parent *PartNode) *PartNode {
	node := &PartNode{Position: position, Level: level, kind: kind}

	switch kind {
	case kindProduction:
		node.Number = fmt.Sprintf("%s-%02d-%04d", cmd.config.Prefix, level, cmd.rand.Intn(10000))
		node.Name = productionNames[cmd.rand.Intn(len(productionNames))]
	case kindPurchased:
		node.Number = fmt.Sprintf("%d %03d", 100+cmd.rand.Intn(900), cmd.rand.Intn(1000))
		node.Name = purchasedNames[cmd.rand.Intn(len(purchasedNames))]
		node.Supplier = suppliers[cmd.rand.Intn(len(suppliers))]
	case kindFastener:
		size := fastenerSizes[cmd.rand.Intn(len(fastenerSizes))]
		node.Number = fmt.Sprintf(fastenerNames[cmd.rand.Intn(len(fastenerNames))], size, size*(2+cmd.rand.Intn(6)))
		node.Name = "Screw"
		node.Supplier = suppliers[cmd.rand.Intn(len(suppliers))]
	case kindNested:
		node.Number = fmt.Sprintf("INT-%05d", cmd.rand.Intn(100000))
		node.Name = "Internal component"
		if parent != nil {
			node.Supplier = parent.Supplier
		}
	case kindJunk:
		node.Number = fmt.Sprintf("SK-%04d", cmd.rand.Intn(10000))
		node.Name = "iMike sketch"
	}
	return node
}

// writePartList writes the part list as a UTF-8 CSV with the header on top
func (cmd *GenerateCommand) writePartList(nodes []*PartNode) error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, GeneratedPartListFile))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(GeneratedColumns); err != nil {
		return err
	}
	for _, node := range nodes {
		record := []string{
			node.Position,
			strconv.FormatInt(int64(node.Quantity), 10),
			node.Number,
			node.Name,
			node.Supplier,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// GeneratedProfile returns the processing profile matching the generated part lists
func (cmd *GenerateCommand) GeneratedProfile() *config.Profile {
	return &config.Profile{
		Columns: entities.ColumnMapping{
			Position: GeneratedColumns[0],
			Quantity: GeneratedColumns[1],
			Number:   GeneratedColumns[2],
			Name:     GeneratedColumns[3],
		},
		MainAssemblyName:       "Generated assembly",
		MainAssemblySets:       "1",
		ProductionPartKeywords: config.KeywordList{cmd.config.Prefix},
		JunkPartKeywords:       config.KeywordList{"iMike"},
		NormalizedColumns:      config.KeywordList{GeneratedColumns[4]},
		Import: csvimport.Options{
			HeaderPosition: csvimport.HeaderTop,
			Encoding:       csvimport.EncodingUTF8,
		},
	}
}

func (cmd *GenerateCommand) writeProfile() error {
	data, err := yaml.Marshal(cmd.GeneratedProfile())
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cmd.config.OutputDir, GeneratedProfileFile), data, 0644)
}
