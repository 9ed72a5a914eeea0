package wordindex

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/aleris/xwords/alphabet"
)

// ContentHash returns a stable hash of a raw word list, for naming a cache
// entry so that editing the source wordlist invalidates its own cache file
// without touching anything else on disk.
func ContentHash(words []string) string {
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)
	h := sha256.New()
	for _, w := range sorted {
		h.Write([]byte(w))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// charSetDTO mirrors alphabet.CharSet with exported fields so it can be
// serialized; alphabet.CharSet itself stays encapsulated.
type charSetDTO struct {
	Blocks []uint64
	Size   int
}

type nodeDTO struct {
	Children []*nodeDTO
	Terminal bool
	DepthSet []charSetDTO
}

type indexDTO struct {
	Letters  []rune
	Exists   []string
	ByLength map[int]*nodeDTO
}

// Save serializes ix as an opaque msgpack blob. The format is not a
// compatibility surface across versions of this module; Load only ever
// needs to succeed against a blob this same version of Save produced, and
// any failure falls back to rebuilding from the raw wordlist.
func Save(ix *Index, w io.Writer) error {
	dto := &indexDTO{
		Letters:  append([]rune(nil), ix.alphabet.LettersSnapshot()...),
		ByLength: make(map[int]*nodeDTO, len(ix.byLength)),
	}
	for word := range ix.exists {
		dto.Exists = append(dto.Exists, word)
	}
	for length, lt := range ix.byLength {
		dto.ByLength[length] = nodeToDTO(lt.root)
	}
	return msgpack.NewEncoder(w).Encode(dto)
}

// Load reconstructs an Index from a blob previously written by Save.
func Load(r io.Reader) (*Index, error) {
	var dto indexDTO
	if err := msgpack.NewDecoder(r).Decode(&dto); err != nil {
		return nil, err
	}

	alpha := alphabet.FromLetters(dto.Letters)

	exists := make(map[string]struct{}, len(dto.Exists))
	for _, w := range dto.Exists {
		exists[w] = struct{}{}
	}

	byLength := make(map[int]*lengthTrie, len(dto.ByLength))
	for length, rootDTO := range dto.ByLength {
		lt := &lengthTrie{length: length, root: nodeFromDTO(rootDTO)}
		byLength[length] = lt
	}

	return &Index{alphabet: alpha, byLength: byLength, exists: exists}, nil
}

func nodeToDTO(n *trieNode) *nodeDTO {
	dto := &nodeDTO{Terminal: n.terminal}
	if n.children != nil {
		dto.Children = make([]*nodeDTO, len(n.children))
		for i, child := range n.children {
			if child != nil {
				dto.Children[i] = nodeToDTO(child)
			}
		}
	}
	for _, cs := range n.depthSet {
		dto.DepthSet = append(dto.DepthSet, charSetDTO{Blocks: cs.BlocksSnapshot(), Size: cs.SizeOf()})
	}
	return dto
}

func nodeFromDTO(dto *nodeDTO) *trieNode {
	if dto == nil {
		return nil
	}
	n := &trieNode{terminal: dto.Terminal}
	if dto.Children != nil {
		n.children = make([]*trieNode, len(dto.Children))
		for i, childDTO := range dto.Children {
			n.children[i] = nodeFromDTO(childDTO)
		}
	}
	for _, csDTO := range dto.DepthSet {
		n.depthSet = append(n.depthSet, alphabet.CharSetFromBlocks(csDTO.Blocks, csDTO.Size))
	}
	return n
}

// cacheFileName is the conventional on-disk name for a cached index, rooted
// under a caller-chosen cache directory.
func cacheFileName(wordlistName string, hash string) string {
	var b strings.Builder
	b.WriteString(wordlistName)
	b.WriteByte('.')
	b.WriteString(hash[:16])
	b.WriteString(".xwindex")
	return b.String()
}

// CacheFileName exposes cacheFileName for callers building the cache path.
func CacheFileName(wordlistName string, words []string) string {
	return cacheFileName(wordlistName, ContentHash(words))
}
