package regions

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/vango-dev/regions/internal/errors"
	"github.com/vango-dev/regions/pkg/reactive"
	"github.com/vango-dev/regions/pkg/vdom"
)

// RegionProps configures an outlet.
type RegionProps struct {
	// Name identifies the region within its layout.
	Name string

	// Required makes the missing-region diagnostic apply.
	Required bool

	// Schema validates Data content. It takes precedence over the
	// registry's schema for Name.
	Schema Schema

	// Fallback renders while the region is unset.
	Fallback func() *vdom.VNode

	// Children renders Data content after validation.
	Children func(data any) *vdom.VNode
}

// Outlet renders one region. It implements vdom.Component.
type Outlet struct {
	props  RegionProps
	reg    *Registry
	owner  *reactive.Owner
	logger *slog.Logger

	mu   sync.RWMutex
	node *vdom.VNode
	err  error
}

// Region declares a region on the registry above parent and returns its
// outlet. The outlet lives in a child scope of parent and re-evaluates
// whenever the region's content changes. Without a registry it always shows
// the fallback.
func Region(parent *reactive.Owner, props RegionProps) *Outlet {
	o := &Outlet{
		props:  props,
		reg:    FromOwner(parent),
		owner:  reactive.NewOwner(parent),
		logger: slog.Default(),
	}

	if o.reg != nil {
		o.logger = o.reg.Logger()
		o.reg.RegisterRegion(props.Name, props.Required)
		o.owner.OnCleanup(func() { o.reg.UnregisterRegion(props.Name) })
	}

	reactive.WithOwner(o.owner, func() {
		reactive.CreateEffect(func() reactive.Cleanup {
			node, err := o.evaluate()
			o.mu.Lock()
			o.node, o.err = node, err
			o.mu.Unlock()
			return nil
		})
	})
	return o
}

// Name returns the region name.
func (o *Outlet) Name() string {
	return o.props.Name
}

// Render returns the node from the latest evaluation. Nil means the outlet
// renders nothing.
func (o *Outlet) Render() *vdom.VNode {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.node
}

// Node wraps the outlet for placement in a view tree.
func (o *Outlet) Node() *vdom.VNode {
	return vdom.Comp(o)
}

// Err returns the validation or render failure from the latest evaluation.
func (o *Outlet) Err() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.err
}

// Dispose unmounts the outlet and undeclares its region.
func (o *Outlet) Dispose() {
	o.owner.Dispose()
}

func (o *Outlet) evaluate() (*vdom.VNode, error) {
	var c Content
	if o.reg != nil {
		c = o.reg.Get(o.props.Name)
	}

	switch c.Kind {
	case KindNull:
		return nil, nil
	case KindFragment:
		return o.call(c.Fragment)
	case KindData:
		return o.renderData(c.Data)
	default:
		if o.props.Fallback == nil {
			return nil, nil
		}
		return o.call(o.props.Fallback)
	}
}

func (o *Outlet) renderData(data any) (*vdom.VNode, error) {
	schema := o.props.Schema
	if schema == nil && o.reg != nil {
		schema = o.reg.Schema(o.props.Name)
	}
	if schema != nil {
		parsed, err := parse(schema, data)
		if err != nil {
			err = errors.New("R201").WithDetailf("region %q", o.props.Name).Wrap(err)
			o.logger.Error("region data failed validation",
				slog.String("region", o.props.Name),
				slog.String("code", "R201"),
				slog.Any("error", err),
			)
			return nil, err
		}
		data = parsed
	}
	if o.props.Children == nil {
		return nil, nil
	}
	return o.call(func() *vdom.VNode { return o.props.Children(data) })
}

// call runs a render function, turning a panic into an R102 error.
func (o *Outlet) call(render func() *vdom.VNode) (node *vdom.VNode, err error) {
	defer func() {
		if p := recover(); p != nil {
			node = nil
			err = errors.New("R102").WithDetailf("region %q", o.props.Name).Wrap(fmt.Errorf("%v", p))
			o.logger.Error("region render panicked",
				slog.String("region", o.props.Name),
				slog.String("code", "R102"),
				slog.Any("error", err),
			)
		}
	}()
	return render(), nil
}
