// Package localonnx adapts a single ONNX model file, run in-process via
// onnxruntime, into a provider.Provider. It is the LocalInference backend
// (§4.2, §4.6 LocalOnlyCapabilities): no network call, no API key, just a
// model file and a vocabulary on local disk. It supports CountTokens and,
// when the model produces a fixed-width vector output, Embed/EmbedBatch;
// chat/generate/NLI/classification are left Unimplemented since a bare
// embedding or encoder checkpoint has no text-generation head.
package localonnx

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/emesal/ratatoskr/pkg/provider"
	"github.com/emesal/ratatoskr/pkg/provider/errors"
	"github.com/emesal/ratatoskr/pkg/provider/types"
)

var envOnce sync.Once
var envErr error

// ensureEnvironment initializes the process-wide onnxruntime environment
// exactly once; onnxruntime_go panics if InitializeEnvironment is called
// twice, and multiple localonnx.Provider instances (e.g. one per local
// model) share the same process-wide runtime.
func ensureEnvironment(sharedLibraryPath string) error {
	envOnce.Do(func() {
		if sharedLibraryPath != "" {
			ort.SetSharedLibraryPath(sharedLibraryPath)
		}
		envErr = ort.InitializeEnvironment()
	})
	return envErr
}

// Config points the adapter at an ONNX model and its tokenizer vocabulary.
type Config struct {
	// ModelID is the bare id this provider answers to (no provider prefix
	// is used locally; the gateway only consults the router by capability
	// for local-inference calls, per §4.5).
	ModelID string

	// ModelPath is the .onnx file to load.
	ModelPath string

	// SharedLibraryPath overrides onnxruntime's shared library location.
	// Left empty to use the runtime's platform default search.
	SharedLibraryPath string

	// VocabPath is a JSON object mapping token string to integer id. Empty
	// means every input token is unknown (§ Open Question: acceptable for
	// models that only need an approximate token count).
	VocabPath string

	// MaxSequenceLength truncates tokenized input and sets the length of the
	// model's input tensor. Zero leaves tokenization (and so CountTokens)
	// unbounded; the input tensor then holds 128 positions, so Embed runs
	// the model on at most the first 128 tokens.
	MaxSequenceLength int

	// InputName/OutputName name the model's input and output tensors. Most
	// single-input encoder exports use "input_ids"/"last_hidden_state" or
	// similar; callers must match their own model's graph.
	InputName  string
	OutputName string

	// EmbeddingDim is the width of one output token's vector (the model's
	// hidden size). Required when OutputName is set.
	EmbeddingDim int
}

// Provider runs a single loaded ONNX model for local inference.
type Provider struct {
	provider.Unimplemented

	cfg       Config
	tokenizer *tokenizer

	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[int64]
	outputTensor *ort.Tensor[float32]
}

var _ provider.Provider = (*Provider)(nil)

// New loads cfg.ModelPath into an onnxruntime session. The caller must call
// Close when done to release the session and its tensors; Close does not
// tear down the process-wide onnxruntime environment, which stays
// initialized once the first New has set it up.
func New(cfg Config) (*Provider, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("localonnx: ModelPath is required")
	}
	if cfg.InputName == "" || cfg.OutputName == "" {
		return nil, fmt.Errorf("localonnx: InputName and OutputName are required")
	}

	tok, err := newTokenizer(cfg.VocabPath, cfg.MaxSequenceLength)
	if err != nil {
		return nil, fmt.Errorf("localonnx: loading vocabulary: %w", err)
	}

	if err := ensureEnvironment(cfg.SharedLibraryPath); err != nil {
		return nil, err
	}

	seqLen := cfg.MaxSequenceLength
	if seqLen <= 0 {
		seqLen = 128
	}

	inputTensor, err := ort.NewEmptyTensor[int64](ort.NewShape(1, int64(seqLen)))
	if err != nil {
		return nil, fmt.Errorf("localonnx: allocating input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(seqLen), int64(cfg.EmbeddingDim)))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("localonnx: allocating output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName},
		[]ort.Value{inputTensor}, []ort.Value{outputTensor}, nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("localonnx: creating session: %w", err)
	}

	return &Provider{
		Unimplemented: provider.Unimplemented{ProviderName: "localonnx"},
		cfg:           cfg,
		tokenizer:     tok,
		session:       session,
		inputTensor:   inputTensor,
		outputTensor:  outputTensor,
	}, nil
}

// Close releases the onnxruntime session.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session != nil {
		p.session.Destroy()
		p.session = nil
	}
	if p.inputTensor != nil {
		p.inputTensor.Destroy()
		p.inputTensor = nil
	}
	if p.outputTensor != nil {
		p.outputTensor.Destroy()
		p.outputTensor = nil
	}
	return nil
}

func (p *Provider) Name() string { return "localonnx" }

// Capabilities reports local inference and token counting always, and
// embedding support when the model was configured with a vector output.
func (p *Provider) Capabilities() types.Capabilities {
	caps := types.LocalOnlyCapabilities()
	if p.cfg.OutputName != "" {
		caps = caps.Add(types.CapEmbed)
	}
	return caps
}

// CountTokens tokenizes text with the configured vocabulary and returns the
// token count, without running the model (§4.2: token counting must not
// require a network round trip).
func (p *Provider) CountTokens(ctx context.Context, modelID, text string) (int64, error) {
	if err := p.checkModel(modelID); err != nil {
		return 0, err
	}
	return p.tokenizer.count(text), nil
}

// Embed runs the model on a single input and mean-pools the token outputs
// into a fixed-width vector.
func (p *Provider) Embed(ctx context.Context, modelID, input string) (*types.EmbeddingResult, error) {
	if err := p.checkModel(modelID); err != nil {
		return nil, err
	}

	ids := p.tokenizer.tokenize(input)
	vec, err := p.runMeanPooled(ids)
	if err != nil {
		return nil, err
	}
	return &types.EmbeddingResult{
		Embedding: vec,
		Usage:     types.EmbeddingUsage{PromptTokens: int64(len(ids)), TotalTokens: int64(len(ids))},
	}, nil
}

// EmbedBatch runs Embed over each input in turn. onnxruntime sessions are
// not safe for concurrent Run calls against the same session, so inputs are
// processed sequentially under the provider's lock rather than fanned out.
func (p *Provider) EmbedBatch(ctx context.Context, modelID string, inputs []string) (*types.EmbeddingsResult, error) {
	if err := p.checkModel(modelID); err != nil {
		return nil, err
	}

	embeddings := make([][]float64, len(inputs))
	var totalTokens int64
	for i, input := range inputs {
		ids := p.tokenizer.tokenize(input)
		vec, err := p.runMeanPooled(ids)
		if err != nil {
			return nil, err
		}
		embeddings[i] = vec
		totalTokens += int64(len(ids))
	}
	return &types.EmbeddingsResult{
		Embeddings: embeddings,
		Usage:      types.EmbeddingUsage{PromptTokens: totalTokens, TotalTokens: totalTokens},
	}, nil
}

func (p *Provider) checkModel(modelID string) error {
	if modelID != "" && modelID != p.cfg.ModelID {
		return errors.NewModelNotFoundError(modelID)
	}
	return nil
}

// runMeanPooled writes ids into the session's bound input tensor, runs the
// model, and mean-pools the first len(ids) rows of the output tensor (at
// most the tensor's sequence length) into a single vector, skipping padding
// positions rather than diluting the mean
// with them. The session's tensors are fixed-shape and reused across calls
// (AdvancedSession.Run operates on its bound buffers in place), so this
// holds the provider lock for the duration of one inference.
func (p *Provider) runMeanPooled(ids []int64) ([]float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return nil, fmt.Errorf("localonnx: provider is closed")
	}

	inputData := p.inputTensor.GetData()
	for i := range inputData {
		if i < len(ids) {
			inputData[i] = ids[i]
		} else {
			inputData[i] = 0
		}
	}

	if err := p.session.Run(); err != nil {
		return nil, fmt.Errorf("localonnx: running session: %w", err)
	}

	outputData := p.outputTensor.GetData()
	dim := p.cfg.EmbeddingDim
	rows := len(ids)
	if rows > len(inputData) {
		rows = len(inputData)
	}
	if rows == 0 {
		rows = 1
	}

	vec := make([]float64, dim)
	for row := 0; row < rows && row*dim < len(outputData); row++ {
		offset := row * dim
		for col := 0; col < dim; col++ {
			vec[col] += float64(outputData[offset+col])
		}
	}
	for col := range vec {
		vec[col] /= float64(rows)
	}
	return vec, nil
}
