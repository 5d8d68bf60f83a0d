package model

// Resource carries the attributes OTLP attaches to a batch of telemetry
// before it is denormalized onto each individual record — typically
// `service.name`, `service.version`, `service.instance.id`.
type Resource struct {
	Attributes Attributes
}

// NewResource returns a Resource wrapping the given attribute set.
func NewResource(attrs Attributes) Resource {
	if attrs == nil {
		attrs = NewAttributes()
	}
	return Resource{Attributes: attrs}
}

// ServiceName returns the `service.name` resource attribute, or "" if absent.
func (r Resource) ServiceName() string {
	v, _ := r.Attributes.GetString("service.name")
	return v
}

// ServiceVersion returns the `service.version` resource attribute, or "" if absent.
func (r Resource) ServiceVersion() string {
	v, _ := r.Attributes.GetString("service.version")
	return v
}

// ServiceInstanceID returns the `service.instance.id` resource attribute, or "" if absent.
func (r Resource) ServiceInstanceID() string {
	v, _ := r.Attributes.GetString("service.instance.id")
	return v
}
